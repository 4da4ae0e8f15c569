package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dreitier/shortcal/calendar"
	"github.com/dreitier/shortcal/config"
	"github.com/dreitier/shortcal/metrics"
	"github.com/dreitier/shortcal/storage"
	"github.com/dreitier/shortcal/timesync"
	"github.com/dreitier/shortcal/web"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
)

const app = "shortcal"

var gitRepo = "dreitier/shortcal"
var gitCommit = "unknown"
var gitTag = "unknown"

func printVersion() {
	if gitTag == "" {
		gitTag = "err-no-git-tag"
	}

	log.Printf("%s (dist=%s; version=%s; commit=%s)", app, gitRepo, gitTag, gitCommit)
}

func main() {
	config.RegisterFlags()
	configureLogrus()
	printVersion()

	cfg := config.GetInstance()
	if !config.HasGlobalDebugEnabled() {
		log.SetLevel(cfg.Global().LogLevel())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := newClock(cfg.Global().InitialOffset())

	store := openAnchorStore(ctx, cfg.Anchor())
	syncer := timesync.NewSyncer(clock, cfg.TimeSync(), store)
	if err := syncer.Restore(ctx); err != nil {
		log.Warnf("Unable to restore clock from anchor: %s", err)
	}

	var routedSyncer *timesync.Syncer
	if cfg.TimeSync().IsEnabled() {
		routedSyncer = syncer
		go func() {
			_ = syncer.Run(ctx)
		}()
	} else {
		log.Info("Time sync is disabled")
	}

	configureTerminal(clock, routedSyncer)

	log.Infof("Current time is %s", clock.NowString())
	log.Error(web.StartServer(web.NewRouter(clock, routedSyncer)))
}

// newClock returns the system clock, corrected by offset if it is not 0.
func newClock(offset int64) *calendar.Clock {
	clock := calendar.NewClock(nil)
	if offset != 0 {
		log.Infof("Applying initial clock offset of %dms", offset)
		clock.SetOffset(offset)
		metrics.GetClockMetrics().UpdateOffset(offset)
	}
	return clock
}

// openAnchorStore returns nil if no anchor is configured or the store is
// unusable; the clock then runs without a last known good time.
func openAnchorStore(ctx context.Context, anchor *config.AnchorConfiguration) storage.Store {
	if anchor == nil {
		return nil
	}

	store, err := storage.NewStore(anchor)
	if err != nil {
		log.Errorf("Unable to open anchor store: %s", err)
		return nil
	}

	if s3Store, ok := store.(*storage.S3Store); ok {
		if err := s3Store.Verify(ctx); err != nil {
			log.Errorf("Unable to verify credentials for anchor bucket '%s': %s", anchor.Bucket, err)
			return nil
		}
	}

	return store
}

func configureTerminal(clock *calendar.Clock, syncer *timesync.Syncer) {
	if config.IsRunningInBackgroundForced() {
		return
	}

	// set up termbox, @see https://github.com/nsf/termbox-go/blob/master/_demos/raw_input.go
	err := termbox.Init()

	if err != nil {
		log.Warnf("Unable to run in interactive mode: %s", err)
		return
	}

	// start goroutine to continuously poll the keyboard
	go func() {
		for {
			var current string
			var data [64]byte

			// we have to poll the raw events; normal events don't include escape sequences
			switch ev := termbox.PollRawEvent(data[:]); ev.Type {
			case termbox.EventRaw:
				d := data[:ev.N]
				current = fmt.Sprintf("%q", d)

				if current == `"\x12"` /* Ctrl+R */ || current == `"r"` {
					if syncer == nil {
						log.Printf("Time sync is disabled, current time is %s", clock.NowString())
						continue
					}
					log.Printf("Forcing time sync...")
					syncer.Trigger()
				} else if current == `"t"` {
					log.Printf("Current time is %s (offset %dms)", clock.NowString(), clock.Offset())
				} else if current == `"\x1b"` /* ESC */ || current == `"q"` || current == `"\x03"` {
					log.Printf("Exiting...")
					termbox.Close()
					os.Exit(0)
				}
			case termbox.EventError:
				panic(ev.Err)
			}
		}
	}()
}

func configureLogrus() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
}
