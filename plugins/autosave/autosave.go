package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = true
	defaultInterval = 30 * time.Second
)

// AutoSave periodically persists the active script as a draft. Its ticker
// goroutine only posts a save request; the save itself runs on the main
// loop, which also owns the dirty flag.
type AutoSave struct {
	api plugin.AppAPI

	// Configuration
	mutex    sync.RWMutex // Protects access to config fields below
	enabled  bool
	interval time.Duration

	// dirty is only touched on the main loop.
	dirty bool

	// Runtime state
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration, subscribes to script changes and starts
// the saver loop if enabled.
func (p *AutoSave) Initialize(api plugin.AppAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		switch v := intervalVal.(type) {
		case time.Duration:
			if v > 0 {
				p.interval = v
			}
		case string:
			parsed, err := time.ParseDuration(v)
			if err != nil || parsed <= 0 {
				logger.Warnf("%s: Invalid 'interval' config ('%s'), using default (%v)", pluginName, v, p.interval)
			} else {
				p.interval = parsed
			}
		default:
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)
	if !isEnabled {
		return nil
	}

	api.SubscribeEvent(event.TypeScriptChanged, func(event.Event) bool {
		p.dirty = true
		return false
	})
	// A finished session replaces the active script.
	api.SubscribeEvent(event.TypeSessionFinished, func(event.Event) bool {
		p.dirty = true
		return false
	})
	api.SubscribeEvent(event.TypeAppQuit, func(event.Event) bool {
		p.saveIfDirty()
		return false
	})

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval)
	logger.Debugf("%s: Saver goroutine started.", pluginName)
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		logger.Debugf("%s: Shutting down...", p.Name())
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

// saverLoop posts a save request to the main loop on every tick.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Post(p.saveIfDirty)
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// saveIfDirty runs on the main loop.
func (p *AutoSave) saveIfDirty() {
	if !p.dirty {
		logger.DebugTagf("autosave", "%s: Draft unchanged, skipping.", p.Name())
		return
	}
	if err := p.api.SaveDraft(); err != nil {
		logger.Errorf("%s: Draft save failed: %v", p.Name(), err)
		return
	}
	p.dirty = false
	logger.DebugTagf("autosave", "%s: Draft saved.", p.Name())
}
