package utils

import "strings"

// ZoneOption pairs a human city name with its IANA timezone identifier
type ZoneOption struct {
	Alias string
	TZ    string
}

// KnownZones contains a hardcoded list of common cities users name when
// setting their timezone. Ordered by expected usage frequency.
var KnownZones = []ZoneOption{
	// East Africa
	{Alias: "Nairobi", TZ: "Africa/Nairobi"},
	{Alias: "Dar es Salaam", TZ: "Africa/Dar_es_Salaam"},
	{Alias: "Kampala", TZ: "Africa/Kampala"},
	{Alias: "Addis Ababa", TZ: "Africa/Addis_Ababa"},

	// Rest of Africa
	{Alias: "Lagos", TZ: "Africa/Lagos"},
	{Alias: "Accra", TZ: "Africa/Accra"},
	{Alias: "Cairo", TZ: "Africa/Cairo"},
	{Alias: "Johannesburg", TZ: "Africa/Johannesburg"},
	{Alias: "Kinshasa", TZ: "Africa/Kinshasa"},

	// Europe
	{Alias: "London", TZ: "Europe/London"},
	{Alias: "Paris", TZ: "Europe/Paris"},
	{Alias: "Berlin", TZ: "Europe/Berlin"},
	{Alias: "Stockholm", TZ: "Europe/Stockholm"},
	{Alias: "Madrid", TZ: "Europe/Madrid"},
	{Alias: "Rome", TZ: "Europe/Rome"},
	{Alias: "Amsterdam", TZ: "Europe/Amsterdam"},
	{Alias: "Lisbon", TZ: "Europe/Lisbon"},
	{Alias: "Istanbul", TZ: "Europe/Istanbul"},

	// Americas
	{Alias: "New York", TZ: "America/New_York"},
	{Alias: "Chicago", TZ: "America/Chicago"},
	{Alias: "Denver", TZ: "America/Denver"},
	{Alias: "Los Angeles", TZ: "America/Los_Angeles"},
	{Alias: "Toronto", TZ: "America/Toronto"},
	{Alias: "Mexico City", TZ: "America/Mexico_City"},
	{Alias: "Sao Paulo", TZ: "America/Sao_Paulo"},
	{Alias: "Buenos Aires", TZ: "America/Argentina/Buenos_Aires"},

	// Middle East and Asia
	{Alias: "Dubai", TZ: "Asia/Dubai"},
	{Alias: "Riyadh", TZ: "Asia/Riyadh"},
	{Alias: "Karachi", TZ: "Asia/Karachi"},
	{Alias: "Mumbai", TZ: "Asia/Kolkata"},
	{Alias: "Delhi", TZ: "Asia/Kolkata"},
	{Alias: "Dhaka", TZ: "Asia/Dhaka"},
	{Alias: "Bangkok", TZ: "Asia/Bangkok"},
	{Alias: "Singapore", TZ: "Asia/Singapore"},
	{Alias: "Hong Kong", TZ: "Asia/Hong_Kong"},
	{Alias: "Shanghai", TZ: "Asia/Shanghai"},
	{Alias: "Tokyo", TZ: "Asia/Tokyo"},
	{Alias: "Seoul", TZ: "Asia/Seoul"},
	{Alias: "Manila", TZ: "Asia/Manila"},
	{Alias: "Jakarta", TZ: "Asia/Jakarta"},

	// Oceania
	{Alias: "Sydney", TZ: "Australia/Sydney"},
	{Alias: "Melbourne", TZ: "Australia/Melbourne"},
	{Alias: "Auckland", TZ: "Pacific/Auckland"},
}

// LookupZone resolves a city alias to its IANA identifier
// Matching is case-insensitive and exact
func LookupZone(alias string) (string, bool) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	for _, zone := range KnownZones {
		if strings.ToLower(zone.Alias) == alias {
			return zone.TZ, true
		}
	}
	return "", false
}

// SearchZones returns up to 10 zones whose alias contains the query
func SearchZones(query string) []ZoneOption {
	if query == "" {
		if len(KnownZones) > 10 {
			return KnownZones[:10]
		}
		return KnownZones
	}

	query = strings.ToLower(strings.TrimSpace(query))
	results := []ZoneOption{}

	for _, zone := range KnownZones {
		if strings.Contains(strings.ToLower(zone.Alias), query) {
			results = append(results, zone)
		}
	}

	if len(results) > 10 {
		return results[:10]
	}

	return results
}
