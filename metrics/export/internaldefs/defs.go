package internaldefs

import authcore "github.com/adminforge/authcore"

// CounterDef maps one engine counter to its exported name.
type CounterDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported engine counter, in stable order.
var CounterDefs = []CounterDef{
	{authcore.MetricLoginSuccess, "authcore_login_success_total", "Successful logins."},
	{authcore.MetricLoginFailure, "authcore_login_failure_total", "Logins rejected for bad credentials."},
	{authcore.MetricLoginRateLimited, "authcore_login_rate_limited_total", "Logins rejected by the frequency ceiling."},
	{authcore.MetricLoginLocked, "authcore_login_locked_total", "Logins rejected while the account was locked."},
	{authcore.MetricTokenIssued, "authcore_token_issued_total", "Token pairs issued."},
	{authcore.MetricRefreshSuccess, "authcore_refresh_success_total", "Access tokens rotated via refresh."},
	{authcore.MetricRefreshFailure, "authcore_refresh_failure_total", "Refresh attempts with an invalid token."},
	{authcore.MetricLogout, "authcore_logout_total", "Explicit logouts."},
	{authcore.MetricStoreError, "authcore_store_error_total", "Session store failures."},
}

// AuditDroppedName is the exported name of the audit backpressure counter.
const AuditDroppedName = "authcore_audit_dropped_total"

// AuditDroppedHelp documents the audit backpressure counter.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
