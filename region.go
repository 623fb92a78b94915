package fractalview

import "math"

// StepRegion moves region by one tick of motion. The pan distance is
// proportional to the current extent and zoom scales the extent about the
// centre. The centre is then clamped to ±MaxCenterAbs and the extent to
// [MinExtent, MaxExtent], preserving aspect ratio. A non-finite result
// resets the region to DefaultRegion.
func StepRegion(region *Region, m MotionState, dt float64, limits FlightLimits) UpdateReport {
	var report UpdateReport
	if m.Paused || (m.Speed == 0 && m.Zoom == 0) {
		return report
	}

	w, h := region.Width(), region.Height()
	c := region.Center()
	cr := real(c) + m.Heading.X*m.Speed*dt*w
	ci := imag(c) + m.Heading.Y*m.Speed*dt*h

	if m.Zoom != 0 {
		f := math.Pow(limits.ZoomBase, -m.Zoom*dt)
		w *= f
		h *= f
	}
	if !finite(cr) || !finite(ci) || !validExtent(w, h) {
		return resetRegion(region)
	}

	lim := math.Abs(limits.MaxCenterAbs)
	if ccr, cci := clamp(cr, -lim, lim), clamp(ci, -lim, lim); ccr != cr || cci != ci {
		cr, ci = ccr, cci
		report = UpdateReport{Clamped: true, Warning: WarningCenterClamped}
	}

	minExt := math.Min(limits.MinExtent, limits.MaxExtent)
	maxExt := math.Max(limits.MinExtent, limits.MaxExtent)
	if scale := extentScale(w, h, minExt, maxExt); scale != 1 {
		w *= scale
		h *= scale
		report = UpdateReport{Clamped: true, Warning: WarningExtentClamped}
	}

	next := RegionAround(complex(cr, ci), w, h)
	if !next.Valid() {
		return resetRegion(region)
	}
	*region = next
	return report
}

// extentScale returns the factor that brings both extents inside
// [minExt, maxExt], or 1 when they already are.
func extentScale(w, h, minExt, maxExt float64) float64 {
	switch {
	case w < minExt || h < minExt:
		s := 1.0
		if w < minExt {
			s = minExt / w
		}
		if h < minExt {
			s = math.Max(s, minExt/h)
		}
		return s
	case w > maxExt || h > maxExt:
		s := 1.0
		if w > maxExt {
			s = maxExt / w
		}
		if h > maxExt {
			s = math.Min(s, maxExt/h)
		}
		return s
	}
	return 1
}

func validExtent(w, h float64) bool {
	return finite(w) && finite(h) && w > 0 && h > 0
}

func resetRegion(region *Region) UpdateReport {
	*region = DefaultRegion()
	return UpdateReport{Clamped: true, Warning: WarningNonFiniteReset}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
