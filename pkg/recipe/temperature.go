package recipe

// CallerTemperature applies the host application's forecast convention
// before calling Assemble. It is not used by the matcher itself.
//
//   - forecast inside the band: pass it through, waistcoats apply
//   - forecast above the band: call Assemble without a temperature
//   - forecast below the band: the recipe does not apply (ok is false) and
//     the caller falls back to its general recommender
func CallerTemperature(b Band, forecast float64) (temperature *float64, ok bool) {
	switch {
	case b.Contains(forecast):
		t := forecast
		return &t, true
	case forecast > b.Max:
		return nil, true
	default:
		return nil, false
	}
}
