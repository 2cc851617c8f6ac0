// Package editor adjusts the number of breakpoints of a piecewise-linear
// curve while keeping its shape.
/*

Devices using calibration curves often store them in lookup tables of
fixed size. A curve file may contain more breakpoints than the device can
hold, or fewer than would describe the curve well. An Editor thins or
densifies such a curve, one breakpoint at a time, guided by the turning
angle at each inner breakpoint.

Turning Angles

For three consecutive breakpoints A, B, C the turning angle θ at B is the
interior angle between the segments AB and BC:

   θ = π  – the curve runs straight through B
   θ → 0  – the curve (nearly) reverses at B

Removal takes away the center of the straightest junction, i.e. the one
with the largest θ: its information about the curve's shape is smallest.
Insertion replaces the center of the sharpest junction (smallest θ) by two
new breakpoints, one on each of the adjacent segments, thus concentrating
resolution where curvature is highest. How far the new breakpoints move
away from the junction is governed by the half-angle and a section divider:

   P1 = A + (B-A)·(1 - sin(θ/2)/divider)
   P2 = B + (C-B)·ratio·sin(θ/2)/divider

where ratio balances the shorter against the longer segment. Larger
dividers place the new breakpoints closer to B. The divider may be changed
until the first edit; Reset and Load unlock it again.

Usage

	ed := editor.New()
	if err := ed.Load(points); err != nil {
	    ...                                  // errors.Is(err, editor.ErrValidation)
	}
	err := ed.AdjustCount(-3)                // thin by 3 breakpoints
	...
	ed.Reset()                               // back to the loaded curve

Ties between junctions of equal angle are always resolved in favour of the
lowest junction index, which makes edit sequences deterministic.

An Editor is not safe for concurrent use.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package editor
