package packets

// V1Response is the legacy month payload.
type V1Response struct {
	Status     string  `json:"status"`
	Zone       string  `json:"zone"`
	PeriodType string  `json:"periodType"`
	PrayerTime []V1Day `json:"prayerTime"`
}

// V1Day carries civil date and wall clock strings in Malaysia time.
type V1Day struct {
	Hijri   string `json:"hijri"`
	Date    string `json:"date"`
	Day     string `json:"day"`
	Fajr    string `json:"fajr"`
	Syuruk  string `json:"syuruk"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// V2Response echoes the requested year and month number and names the normalized
// month.
type V2Response struct {
	Zone        string  `json:"zone"`
	Year        int     `json:"year"`
	Month       string  `json:"month"`
	MonthNumber int     `json:"month_number"`
	Prayers     []V2Day `json:"prayers"`
}

// V2Day carries unix seconds.
type V2Day struct {
	Day     int    `json:"day"`
	Hijri   string `json:"hijri"`
	Fajr    int64  `json:"fajr"`
	Syuruk  int64  `json:"syuruk"`
	Dhuhr   int64  `json:"dhuhr"`
	Asr     int64  `json:"asr"`
	Maghrib int64  `json:"maghrib"`
	Isha    int64  `json:"isha"`
}
