package dgpl

// Authorize maps verified claims to a permission decision: it compares the
// result's role against required and returns [ErrPermissionDenied] on a
// mismatch. It is a pure check over the AuthResult, with no store lookup
// and no side effect beyond the denial counter.
func (e *Engine) Authorize(res *AuthResult, required Role) error {
	if res == nil || !res.Role.Satisfies(required) {
		e.metricInc(MetricAuthorizeDenied)
		return ErrPermissionDenied
	}
	return nil
}
