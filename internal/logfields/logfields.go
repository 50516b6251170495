package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyLabel      = "label"
	KeyURL        = "url"
	KeyDepth      = "depth"
	KeyNodes      = "nodes"
	KeyDurationMS = "duration_ms"
	KeySnapshotID = "snapshot_id"
	KeyAddr       = "addr"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeySubject    = "subject"
	KeyError      = "error"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func Nodes(n int) slog.Attr           { return slog.Int(KeyNodes, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func SnapshotID(id string) slog.Attr  { return slog.String(KeySnapshotID, id) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
