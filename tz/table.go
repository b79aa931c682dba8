package tz

// DefaultTable is the built-in place-name table. Entries are lower-case;
// order matters because the substring fallback takes the first match.
func DefaultTable() []Location {
	return []Location{
		{"madrid", "Europe/Madrid"},
		{"barcelona", "Europe/Madrid"},
		{"spain", "Europe/Madrid"},
		{"lisbon", "Europe/Lisbon"},
		{"portugal", "Europe/Lisbon"},
		{"london", "Europe/London"},
		{"manchester", "Europe/London"},
		{"edinburgh", "Europe/London"},
		{"united kingdom", "Europe/London"},
		{"dublin", "Europe/Dublin"},
		{"ireland", "Europe/Dublin"},
		{"paris", "Europe/Paris"},
		{"lyon", "Europe/Paris"},
		{"france", "Europe/Paris"},
		{"berlin", "Europe/Berlin"},
		{"munich", "Europe/Berlin"},
		{"hamburg", "Europe/Berlin"},
		{"germany", "Europe/Berlin"},
		{"amsterdam", "Europe/Amsterdam"},
		{"netherlands", "Europe/Amsterdam"},
		{"brussels", "Europe/Brussels"},
		{"belgium", "Europe/Brussels"},
		{"zurich", "Europe/Zurich"},
		{"geneva", "Europe/Zurich"},
		{"switzerland", "Europe/Zurich"},
		{"vienna", "Europe/Vienna"},
		{"austria", "Europe/Vienna"},
		{"rome", "Europe/Rome"},
		{"milan", "Europe/Rome"},
		{"italy", "Europe/Rome"},
		{"prague", "Europe/Prague"},
		{"warsaw", "Europe/Warsaw"},
		{"poland", "Europe/Warsaw"},
		{"stockholm", "Europe/Stockholm"},
		{"sweden", "Europe/Stockholm"},
		{"oslo", "Europe/Oslo"},
		{"norway", "Europe/Oslo"},
		{"copenhagen", "Europe/Copenhagen"},
		{"denmark", "Europe/Copenhagen"},
		{"helsinki", "Europe/Helsinki"},
		{"finland", "Europe/Helsinki"},
		{"athens", "Europe/Athens"},
		{"greece", "Europe/Athens"},
		{"istanbul", "Europe/Istanbul"},
		{"turkey", "Europe/Istanbul"},
		{"moscow", "Europe/Moscow"},
		{"kyiv", "Europe/Kyiv"},
		{"ukraine", "Europe/Kyiv"},
		{"new york", "America/New_York"},
		{"brooklyn", "America/New_York"},
		{"boston", "America/New_York"},
		{"washington", "America/New_York"},
		{"miami", "America/New_York"},
		{"atlanta", "America/New_York"},
		{"toronto", "America/Toronto"},
		{"montreal", "America/Toronto"},
		{"chicago", "America/Chicago"},
		{"austin", "America/Chicago"},
		{"dallas", "America/Chicago"},
		{"houston", "America/Chicago"},
		{"denver", "America/Denver"},
		{"phoenix", "America/Phoenix"},
		{"los angeles", "America/Los_Angeles"},
		{"san francisco", "America/Los_Angeles"},
		{"seattle", "America/Los_Angeles"},
		{"portland", "America/Los_Angeles"},
		{"vancouver", "America/Vancouver"},
		{"mexico city", "America/Mexico_City"},
		{"mexico", "America/Mexico_City"},
		{"bogota", "America/Bogota"},
		{"colombia", "America/Bogota"},
		{"lima", "America/Lima"},
		{"peru", "America/Lima"},
		{"santiago", "America/Santiago"},
		{"chile", "America/Santiago"},
		{"buenos aires", "America/Argentina/Buenos_Aires"},
		{"argentina", "America/Argentina/Buenos_Aires"},
		{"sao paulo", "America/Sao_Paulo"},
		{"rio de janeiro", "America/Sao_Paulo"},
		{"brazil", "America/Sao_Paulo"},
		{"tokyo", "Asia/Tokyo"},
		{"osaka", "Asia/Tokyo"},
		{"japan", "Asia/Tokyo"},
		{"seoul", "Asia/Seoul"},
		{"korea", "Asia/Seoul"},
		{"beijing", "Asia/Shanghai"},
		{"shanghai", "Asia/Shanghai"},
		{"shenzhen", "Asia/Shanghai"},
		{"china", "Asia/Shanghai"},
		{"hong kong", "Asia/Hong_Kong"},
		{"taipei", "Asia/Taipei"},
		{"taiwan", "Asia/Taipei"},
		{"singapore", "Asia/Singapore"},
		{"kuala lumpur", "Asia/Kuala_Lumpur"},
		{"malaysia", "Asia/Kuala_Lumpur"},
		{"bangkok", "Asia/Bangkok"},
		{"thailand", "Asia/Bangkok"},
		{"jakarta", "Asia/Jakarta"},
		{"indonesia", "Asia/Jakarta"},
		{"manila", "Asia/Manila"},
		{"philippines", "Asia/Manila"},
		{"hanoi", "Asia/Ho_Chi_Minh"},
		{"ho chi minh", "Asia/Ho_Chi_Minh"},
		{"vietnam", "Asia/Ho_Chi_Minh"},
		{"mumbai", "Asia/Kolkata"},
		{"delhi", "Asia/Kolkata"},
		{"bangalore", "Asia/Kolkata"},
		{"india", "Asia/Kolkata"},
		{"dubai", "Asia/Dubai"},
		{"abu dhabi", "Asia/Dubai"},
		{"tel aviv", "Asia/Jerusalem"},
		{"jerusalem", "Asia/Jerusalem"},
		{"israel", "Asia/Jerusalem"},
		{"cairo", "Africa/Cairo"},
		{"egypt", "Africa/Cairo"},
		{"lagos", "Africa/Lagos"},
		{"nigeria", "Africa/Lagos"},
		{"nairobi", "Africa/Nairobi"},
		{"kenya", "Africa/Nairobi"},
		{"cape town", "Africa/Johannesburg"},
		{"johannesburg", "Africa/Johannesburg"},
		{"south africa", "Africa/Johannesburg"},
		{"sydney", "Australia/Sydney"},
		{"melbourne", "Australia/Melbourne"},
		{"brisbane", "Australia/Brisbane"},
		{"perth", "Australia/Perth"},
		{"australia", "Australia/Sydney"},
		{"auckland", "Pacific/Auckland"},
		{"wellington", "Pacific/Auckland"},
		{"new zealand", "Pacific/Auckland"},
		{"honolulu", "Pacific/Honolulu"},
		{"hawaii", "Pacific/Honolulu"},
		{"anchorage", "America/Anchorage"},
		{"alaska", "America/Anchorage"},
		{"reykjavik", "Atlantic/Reykjavik"},
		{"iceland", "Atlantic/Reykjavik"},
	}
}
