package engine

import "github.com/MOYARU/krs/internal/report"

// Classify maps the two category scores to a qualitative label. Rules are
// evaluated in priority order; the first match wins. The rationale names the
// rule that fired, for the report.
func Classify(kernelScore, osScore float64) (report.Classification, string) {
	switch {
	case kernelScore >= 60 && osScore > 40:
		return report.ClassificationKernelGrade,
			"kernel primitives >= 60 with OS services > 40"
	case kernelScore >= 30 && kernelScore < 60:
		return report.ClassificationKernelPrototype,
			"kernel primitives between 30 and 60"
	case kernelScore < 30 && osScore >= 50:
		return report.ClassificationOSPlatform,
			"OS services >= 50 without kernel primitives"
	default:
		return report.ClassificationApplicationOther,
			"neither kernel nor OS thresholds met"
	}
}
