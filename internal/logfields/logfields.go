// internal/logfields/logfields.go
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared across packages.
const (
	KeyConsumer  = "consumer"
	KeyFailures  = "failures"
	KeyThreshold = "threshold"
	KeyAvailable = "available"
	KeyRegions   = "regions"
	KeyRegion    = "region"
	KeyURL       = "url"
	KeyPath      = "path"
	KeyAddr      = "addr"
	KeySubject   = "subject"
	KeyEndpoint  = "endpoint"
	KeyDuration  = "duration_ms"
	KeyError     = "error"
)

func Consumer(name string) slog.Attr  { return slog.String(KeyConsumer, name) }
func Failures(n int) slog.Attr        { return slog.Int(KeyFailures, n) }
func Threshold(n int) slog.Attr       { return slog.Int(KeyThreshold, n) }
func Available(ok bool) slog.Attr     { return slog.Bool(KeyAvailable, ok) }
func Regions(n int) slog.Attr         { return slog.Int(KeyRegions, n) }
func Region(name string) slog.Attr    { return slog.String(KeyRegion, name) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Endpoint(e string) slog.Attr     { return slog.String(KeyEndpoint, e) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDuration, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
