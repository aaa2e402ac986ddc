package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/waktusolat/solat-api/internal/config"
	"github.com/waktusolat/solat-api/internal/db"
	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/model"
	"github.com/waktusolat/solat-api/internal/notify"
	"github.com/waktusolat/solat-api/internal/redis"
	"github.com/waktusolat/solat-api/internal/schedule"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.json>...",
	Short: "Load zone months from JSON files",
	Long: `Each file holds one zone month:

  {"zone": "SGR01", "year": 2026, "month": 1,
   "prayers": [{"day": 1, "hijri": "1447-07-11", "fajr": 1767219240, ...}, ...]}

Times are unix seconds. Existing records for the month are replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate files without writing")
}

type monthFile struct {
	Zone    string `json:"zone"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Prayers []struct {
		Day     int    `json:"day"`
		Hijri   string `json:"hijri"`
		Fajr    int64  `json:"fajr"`
		Syuruk  int64  `json:"syuruk"`
		Dhuhr   int64  `json:"dhuhr"`
		Asr     int64  `json:"asr"`
		Maghrib int64  `json:"maghrib"`
		Isha    int64  `json:"isha"`
	} `json:"prayers"`
}

type parsedMonth struct {
	zone    string
	period  model.NormalizedPeriod
	records []model.PrayerRecord
}

// parseMonthFile validates a month file against the gazetteer and the calendar.
func parseMonthFile(r io.Reader, zones *gazetteer.Gazetteer) (parsedMonth, error) {
	var f monthFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return parsedMonth{}, fmt.Errorf("decode: %w", err)
	}
	if _, ok := zones.Get(f.Zone); !ok {
		return parsedMonth{}, fmt.Errorf("unknown zone %q", f.Zone)
	}
	if f.Month < 1 || f.Month > 12 {
		return parsedMonth{}, fmt.Errorf("month %d out of range", f.Month)
	}

	period := model.NormalizedPeriod{Year: f.Year, Month: time.Month(f.Month)}
	days := make([]schedule.Day, len(f.Prayers))
	for i, p := range f.Prayers {
		days[i] = schedule.Day{
			Day: p.Day, Hijri: p.Hijri,
			Fajr: p.Fajr, Syuruk: p.Syuruk, Dhuhr: p.Dhuhr,
			Asr: p.Asr, Maghrib: p.Maghrib, Isha: p.Isha,
		}
	}
	records, err := schedule.BuildMonth(f.Zone, period, days)
	if err != nil {
		return parsedMonth{}, err
	}
	return parsedMonth{zone: f.Zone, period: period, records: records}, nil
}

func readMonthFile(path string, zones *gazetteer.Gazetteer) (parsedMonth, error) {
	file, err := os.Open(path)
	if err != nil {
		return parsedMonth{}, err
	}
	defer file.Close()

	m, err := parseMonthFile(file, zones)
	if err != nil {
		return parsedMonth{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	zones := gazetteer.MustLoad()

	months := make([]parsedMonth, 0, len(args))
	for _, path := range args {
		m, err := readMonthFile(path, zones)
		if err != nil {
			return err
		}
		months = append(months, m)
	}
	if importDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) valid\n", len(months))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := db.Init(cfg.DatabaseURL); err != nil {
		return err
	}
	defer db.DB.Close()

	var writer schedule.Writer = db.NewStore(db.DB)
	if cfg.CacheEnabled() {
		writer = redis.NewCachedStore(db.NewStore(db.DB), redis.NewClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword), cfg.CacheTTL, nil)
	}

	var publisher notify.Publisher = notify.Nop{}
	if cfg.MQTTBrokerURL != "" {
		p, err := notify.NewMQTTPublisher(cfg.MQTTBrokerURL, "solatctl-"+uuid.NewString()[:8], cfg.MQTTTopicPrefix)
		if err != nil {
			log.Warn().Err(err).Msg("MQTT unavailable, skipping notifications")
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	return importMonths(cmd.Context(), cmd.OutOrStdout(), writer, publisher, months)
}

func importMonths(ctx context.Context, out io.Writer, writer schedule.Writer, publisher notify.Publisher, months []parsedMonth) error {
	for _, m := range months {
		if err := writer.UpsertMonth(ctx, m.zone, m.period, m.records); err != nil {
			return fmt.Errorf("import %s %d-%02d: %w", m.zone, m.period.Year, int(m.period.Month), err)
		}
		evt := notify.ScheduleUpdated{
			Zone:      m.zone,
			Year:      m.period.Year,
			Month:     int(m.period.Month),
			Records:   len(m.records),
			UpdatedBy: "solatctl",
			UpdatedAt: time.Now().UTC(),
		}
		if err := publisher.PublishScheduleUpdated(ctx, evt); err != nil {
			log.Warn().Err(err).Str("zone", m.zone).Msg("notification failed")
		}
		fmt.Fprintf(out, "imported %s %d-%02d (%d days)\n", m.zone, m.period.Year, int(m.period.Month), len(m.records))
	}
	return nil
}
