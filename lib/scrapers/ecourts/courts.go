package ecourts

// The portal's court selection page is a static dropdown; its contents
// change rarely enough that a baked-in catalog beats scraping it on
// every process start.
var courtCatalog = []Court{
	{Code: "01", Name: "Supreme Court of India", Type: "Supreme Court"},
	{Code: "02", Name: "Delhi High Court", Type: "High Court"},
	{Code: "03", Name: "Bombay High Court", Type: "High Court"},
	{Code: "04", Name: "Madras High Court", Type: "High Court"},
	{Code: "05", Name: "Calcutta High Court", Type: "High Court"},
	{Code: "06", Name: "Mumbai City Civil Court", Type: "District Court"},
	{Code: "07", Name: "Ernakulam District Court", Type: "District Court"},
	{Code: "08", Name: "Chennai City Civil Court", Type: "District Court"},
	{Code: "09", Name: "Jaipur District Court", Type: "District Court"},
}

// Courts returns the known court codes and names.
func Courts() []Court {
	out := make([]Court, len(courtCatalog))
	copy(out, courtCatalog)
	return out
}
