package alert

// Permission mirrors the browser notification permission states.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Options for a local push alert. Alerts sharing a Tag coalesce into
// one surfaced alert instead of stacking.
type Options struct {
	Body string
	Tag  string
}

// Alerter is the local push collaborator. A denied or default
// permission is not an error; callers silently skip the push.
type Alerter interface {
	PermissionState() Permission
	RequestPermission() Permission
	Show(title string, opts Options)
}

// Toaster surfaces transient in-app messages. Severity escalates the
// presentation, nothing else.
type Toaster interface {
	Info(message string)
	Success(message string)
	Warning(message string)
	Error(message string)
}
