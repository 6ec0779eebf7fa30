package model

import "strings"

// Status is the IUCN-style conservation category of a species.
type Status string

const (
	StatusCR Status = "CR"
	StatusEN Status = "EN"
	StatusVU Status = "VU"
	StatusNT Status = "NT"
	StatusLC Status = "LC"
)

var statusInfo = map[Status]struct {
	severity int
	color    string
	label    string
}{
	StatusCR: {5, "#ff0044", "Critically Endangered"},
	StatusEN: {4, "#ff6600", "Endangered"},
	StatusVU: {3, "#ffcc00", "Vulnerable"},
	StatusNT: {2, "#00ffc2", "Near Threatened"},
	StatusLC: {1, "#00ff66", "Least Concern"},
}

const unknownStatusColor = "#888888"

func (s Status) normalized() Status {
	return Status(strings.ToUpper(strings.TrimSpace(string(s))))
}

// Severity orders statuses CR > EN > VU > NT > LC. Unknown values rank 0.
func (s Status) Severity() int {
	return statusInfo[s.normalized()].severity
}

// Color is the hex color used for the status in popups.
func (s Status) Color() string {
	if info, ok := statusInfo[s.normalized()]; ok {
		return info.color
	}
	return unknownStatusColor
}

func (s Status) Label() string {
	if info, ok := statusInfo[s.normalized()]; ok {
		return info.label
	}
	return string(s)
}

func (s Status) Known() bool {
	_, ok := statusInfo[s.normalized()]
	return ok
}
