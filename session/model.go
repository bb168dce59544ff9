package session

// Session is one authenticated device/login instance. A record is
// immutable once stored; a refresh copies its attributes forward under a
// new access-token key instead of mutating it in place.
type Session struct {
	UserID      string
	Username    string
	DeptID      string
	Authorities []string

	IP        string
	Region    string
	OS        string
	Browser   string
	Device    string
	UserAgent string

	// LoginAt is the login timestamp in epoch milliseconds.
	LoginAt int64
}

// Principal is the identity subset embedded in a session and handed back
// to callers when an access token is parsed.
type Principal struct {
	UserID      string
	Username    string
	DeptID      string
	Authorities []string
}

// ClientContext carries the request-derived metadata a session is
// enriched with. Region, OS, Browser and Device come from an external
// resolver and are stored verbatim.
type ClientContext struct {
	IP        string
	Region    string
	OS        string
	Browser   string
	Device    string
	UserAgent string
}
