package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// the portal renders every hearing and filing date in IST, so the
// "listed today/tomorrow" date arithmetic has to happen in IST too,
// no matter which timezone the process itself lands in
func Now() time.Time {
	return time.Now().In(Location)
}
