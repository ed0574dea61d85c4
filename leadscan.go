// Package leadscan extracts business contact details from web pages.
// Given a URL it fetches the page through a relay, pulls out email
// addresses and phone numbers with pattern matching, filters known false
// positives and deduplicates the result under a global rate limit.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, goquery/).
package leadscan
