// Package domain reduces SpotCrime incident records into crime reports.
//
// # Data Source
//
// Incidents come from the SpotCrime crimes endpoint, queried by point and radius:
//
//	https://api.spotcrime.com/crimes.json?lat=37.334164&lon=-121.884301&radius=0.002&key=.
//
// The response is a JSON object holding a single array of flat records:
//
//	{"crimes": [{"cdid": 71203045, "type": "Theft", "date": "03/14/16 09:30 PM",
//	  "address": "100 BLOCK OF S 1ST ST", "lat": 37.33, "lon": -121.88}]}
//
// # Address Conventions
//
// Addresses are free text with several competing conventions:
//
//	"100 BLOCK OF S 1ST ST"  → "S 1ST ST"
//	"1200 BLOCK E SANTA CLARA ST" → "E SANTA CLARA ST"
//	"N 4TH ST & E ST JOHN ST" → "N 4TH ST", "E ST JOHN ST"
//	"ALMADEN BLVD AND W SAN CARLOS ST" → "ALMADEN BLVD", "W SAN CARLOS ST"
//	"ESCALON AV #2027" → "ESCALON AV"
//
// Delimiters are matched as plain substrings, in the order listed above. An
// intersection names two streets, and each is counted.
//
// # Time Format
//
//	"MM/DDD/YY HH:MM AM|PM"  →  e.g. "03/14/16 09:30 PM"
//
// The middle field is read as a day of year. Only the wall-clock part decides the
// time band; see [TimeBands] for the boundary policy.
package domain
