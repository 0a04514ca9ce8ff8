// Package effects holds the independent effect calculators that turn the
// terminal state of an atmospheric entry into physical consequences.
//
// # Model fidelity
//
// Every calculator is a simplified scaling law chosen for interactive,
// real-time what-if exploration. The constants in [Tuning] are tuned for
// visual plausibility, not engineering-grade accuracy, and results must not
// be read as peer-reviewed estimates.
//
// # Calculators
//
//	Crater:     π-scaling transient diameter, final = 1.3 × transient,
//	            depth / rim / central peak as fixed ratios of the final diameter.
//	Blast:      R = k·E_mt^(1/3) for five overpressure bands, near-field bands
//	            shrunk for high bursts (factor in [0.5, 1.0]).
//	Thermal:    third-degree burn radius 10·E_mt^0.4 km × burst-height factor
//	            in [0.6, 1.2].
//	Seismic:    M = (2/3)·log10(0.5·E) − 3.2 in [0, 9.5]; damage radius
//	            10 km at M5 growing ×10^0.375 per magnitude.
//	Tsunami:    wave heights ∝ sqrt(E_mt) at 100 km and 1000 km, active only
//	            for ocean depths over 50 m.
//	Ejecta:     blanket radius, excavated volume and a launch velocity proxy.
//	Mitigation: success probability and energy reduction per strategy.
//	Atmosphere: dust loading, ozone depletion and surface cooling.
//
// All inputs are SI unless a parameter name says otherwise (Mt, km). Every
// calculator returns a zero value for degenerate input instead of an error.
package effects
