package service

import "strings"

// SplitByDomain partitions attendee emails into internal and external
// relative to the requester's directory domain. Matching is exact and
// case-sensitive; the directory supplies domains already normalized. An
// empty requesterDomain (profile lookup failed) classifies every attendee
// as external.
func SplitByDomain(requesterDomain string, attendeeEmails []string) (internal, external []string) {
	internal = make([]string, 0, len(attendeeEmails))
	external = make([]string, 0, len(attendeeEmails))

	for _, email := range attendeeEmails {
		if requesterDomain != "" && emailDomain(email) == requesterDomain {
			internal = append(internal, email)
		} else {
			external = append(external, email)
		}
	}
	return internal, external
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}
