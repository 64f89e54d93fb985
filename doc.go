// Package generator computes magnetic flux and induced voltage traces for
// simple electrical generator topologies:
//
//   - [Engine]: a rotor carrying evenly spaced permanent magnets spinning past
//     stationary pickup coils, using a localized flux model (a magnet only
//     links a coil while it is within the coil's angular influence window).
//   - [LinearRig]: a stream of magnets translating at constant speed past a
//     stationary rectangular coil, using circle segment overlap areas.
//
// Both produce [Trace] values, ordered (time, value) sample sequences, for an
// external animation or verification layer to consume. The models are pure
// functions of their configuration and the requested time axis; they hold no
// internal state and are safe to evaluate concurrently.
package generator
