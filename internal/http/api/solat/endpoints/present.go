package endpoints

import (
	"time"

	"github.com/waktusolat/solat-api/internal/calendar"
	"github.com/waktusolat/solat-api/internal/http/api/solat/packets"
	"github.com/waktusolat/solat-api/internal/model"
)

const (
	v1DateLayout = "02-Jan-2006"
	v1TimeLayout = "15:04:05"
)

// PresentV1 projects a month onto the legacy shape.
func PresentV1(month model.MonthSchedule) packets.V1Response {
	hms := func(t time.Time) string { return t.In(calendar.Location).Format(v1TimeLayout) }

	days := make([]packets.V1Day, len(month.Records))
	for i, rec := range month.Records {
		date := rec.Date.In(calendar.Location)
		days[i] = packets.V1Day{
			Hijri:   rec.Hijri,
			Date:    date.Format(v1DateLayout),
			Day:     date.Weekday().String(),
			Fajr:    hms(rec.Fajr),
			Syuruk:  hms(rec.Syuruk),
			Dhuhr:   hms(rec.Dhuhr),
			Asr:     hms(rec.Asr),
			Maghrib: hms(rec.Maghrib),
			Isha:    hms(rec.Isha),
		}
	}
	return packets.V1Response{
		Status:     "OK!",
		Zone:       month.Zone,
		PeriodType: "month",
		PrayerTime: days,
	}
}

// PresentV2 projects a month onto the v2 shape.
func PresentV2(month model.MonthSchedule) packets.V2Response {
	days := make([]packets.V2Day, len(month.Records))
	for i, rec := range month.Records {
		days[i] = packets.V2Day{
			Day:     rec.Date.In(calendar.Location).Day(),
			Hijri:   rec.Hijri,
			Fajr:    rec.Fajr.Unix(),
			Syuruk:  rec.Syuruk.Unix(),
			Dhuhr:   rec.Dhuhr.Unix(),
			Asr:     rec.Asr.Unix(),
			Maghrib: rec.Maghrib.Unix(),
			Isha:    rec.Isha.Unix(),
		}
	}
	return packets.V2Response{
		Zone:        month.Zone,
		Year:        month.Requested.Year,
		Month:       month.Period.Upper(),
		MonthNumber: month.Requested.Month,
		Prayers:     days,
	}
}
