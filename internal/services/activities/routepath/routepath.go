// Package routepath stores canonical HTTP paths for the activities service.
package routepath

import "net/url"

const (
	Root                      = "/"
	Health                    = "/up"
	StaticPrefix              = "/static/"
	StaticIndex               = "/static/index.html"
	Activities                = "/activities"
	ActivitiesPrefix          = "/activities/"
	ActivitySignupPattern     = ActivitiesPrefix + "{activityName}/signup"
	ActivityUnregisterPattern = ActivitiesPrefix + "{activityName}/unregister"
)

// ActivitySignup returns the signup route for one activity.
func ActivitySignup(activityName string) string {
	return ActivitiesPrefix + escapeSegment(activityName) + "/signup"
}

// ActivityUnregister returns the unregister route for one activity.
func ActivityUnregister(activityName string) string {
	return ActivitiesPrefix + escapeSegment(activityName) + "/unregister"
}

// escapeSegment escapes one path segment. Activity names are matched
// exactly, so the raw value is escaped without normalization.
func escapeSegment(raw string) string {
	return url.PathEscape(raw)
}
