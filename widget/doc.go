// Package widget holds layout helpers and primitive builders for the small
// set of controls the compositor ships with.
//
// Layout follows the usual limits model: a Limits box is narrowed by the
// widget's Length on each axis and then resolved against the widget's
// intrinsic size. The builders turn already-laid-out bounds into scene
// primitives; they keep no state.
package widget
