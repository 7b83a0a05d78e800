package tokebi

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/tokebi-analytics/tokebi-go/adapters"
)

// Client is the pipeline orchestrator. It stamps recorded events with
// identity and timing, buffers them in the queue, flushes on a timer or when
// forced, hands failed batches to the offline store and replays them on the
// next start.
//
// All methods are safe for concurrent use. RecordEvent, StartSession,
// EndSession and Flush never block on network I/O.
type Client struct {
	config       Config
	queue        *Queue
	identity     *IdentityManager
	offline      *OfflineStore
	delivery     *DeliveryClient
	registration *RegistrationClient
	scheduler    SchedulerAdapter
	logger       LoggerAdapter
	clock        Clock

	mu               sync.Mutex
	initialized      bool
	playerID         string
	sessionID        string
	registeredGameID string
	registering      bool
	cancelFlush      adapters.CancelFunc
	cancelReplay     adapters.CancelFunc
}

// NewClient creates a Client from the given configuration, filling defaults
// and wiring default adapters for any not provided. Construction always
// succeeds; a client missing its API key or game id drops events with
// ErrNotConfigured instead of failing the host.
func NewClient(config Config) *Client {
	config.applyDefaults()

	httpAdapter := config.Adapters.HTTPAdapter
	if httpAdapter == nil {
		httpAdapter = adapters.NewNetHTTPAdapter()
	}
	storageAdapter := config.Adapters.StorageAdapter
	if storageAdapter == nil {
		storageAdapter = adapters.NewFileStorageAdapter(config.StorageDir)
	}
	logger := config.Adapters.LoggerAdapter
	if logger == nil {
		logger = adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn)
	}
	scheduler := config.Adapters.SchedulerAdapter
	if scheduler == nil {
		scheduler = adapters.NewTickerScheduler()
	}
	clock := config.Clock
	if clock == nil {
		clock = realClock{}
	}

	delivery := NewDeliveryClient(httpAdapter, logger, config.Endpoint, config.APIKey)

	return &Client{
		config:       config,
		queue:        NewQueue(),
		identity:     NewIdentityManager(storageAdapter, logger, clock),
		offline:      NewOfflineStore(storageAdapter, logger, config.MaxStoredEvents),
		delivery:     delivery,
		registration: NewRegistrationClient(delivery, logger),
		scheduler:    scheduler,
		logger:       logger,
		clock:        clock,
	}
}

// Init resolves the player identity, replays events persisted by a previous
// run and starts the periodic flush timer. Idempotent. Replayed events are
// flushed after ReplayDelay instead of waiting a full flush interval.
func (c *Client) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	playerID, err := c.identity.GetOrCreatePlayerID()
	if err != nil {
		return fmt.Errorf("resolve player ID: %w", err)
	}
	c.playerID = playerID

	// The one LoadAndClear of this process lifetime. It happens before the
	// flush timer exists, so replay cannot race a periodic drain.
	replayed, err := c.offline.LoadAndClear()
	if err != nil {
		c.logger.Warn("Failed to load offline events: %v", err)
		replayed = nil
	}
	if len(replayed) > 0 {
		c.reconcileGameIDLocked(replayed)
		c.queue.LoadFromSlice(replayed)
	}

	c.cancelFlush = c.scheduler.Every(c.config.FlushInterval, c.Flush)
	if len(replayed) > 0 {
		c.cancelReplay = c.scheduler.After(c.config.ReplayDelay, c.Flush)
	}

	c.initialized = true
	c.logger.Info("Tokebi client initialized (player %s, %d events replayed)", playerID, len(replayed))
	return nil
}

// RecordEvent queues a named event. Attribute values that look numeric are
// sent as JSON numbers and empty values are skipped; use RecordEventPayload
// for explicit typing.
func (c *Client) RecordEvent(name string, attributes map[string]string) error {
	return c.RecordEventPayload(name, coerceAttributes(attributes))
}

// RecordEventPayload queues a named event with a pre-built payload. Payload
// values must be strings or numbers. The event is stamped with the current
// timestamp, player id, session id (when a session is active) and the
// canonical game id when registration has succeeded.
func (c *Client) RecordEventPayload(name string, payload map[string]any) error {
	if !c.config.configured() {
		c.logger.Error("Tokebi not configured, dropping event %q: set API key and game ID", name)
		metricEventsDropped.Inc()
		return ErrNotConfigured
	}

	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		c.logger.Error("RecordEvent called before Init, dropping event %q", name)
		metricEventsDropped.Inc()
		return ErrNotInitialized
	}
	event := c.newEventLocked(name, payload)
	c.mu.Unlock()

	c.queue.Enqueue(event)
	metricEventsRecorded.Inc()
	c.logger.Debug("Queued event %q (queue size %d)", name, c.queue.Len())

	if c.queue.Len() >= c.config.MaxQueueSize {
		c.logger.Warn("Event queue reached %d, forcing flush", c.config.MaxQueueSize)
		c.Flush()
	}
	return nil
}

// StartSession begins a session and queues a session_start event carrying the
// attributes. Returns false without touching state if a session is already
// active or the client is unusable.
func (c *Client) StartSession(attributes map[string]string) bool {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		c.logger.Warn("StartSession called before Init")
		return false
	}
	if c.sessionID != "" {
		c.mu.Unlock()
		c.logger.Warn("Session already started")
		return false
	}
	sessionID := c.identity.NewSessionID()
	c.sessionID = sessionID
	c.mu.Unlock()

	payload := coerceAttributes(attributes)
	payload["sessionId"] = sessionID
	payload["timestamp"] = c.clock.Now().Unix()

	if err := c.RecordEventPayload("session_start", payload); err != nil {
		c.mu.Lock()
		c.sessionID = ""
		c.mu.Unlock()
		return false
	}

	c.logger.Info("Session started: %s", sessionID)
	return true
}

// EndSession queues a session_end event, flushes immediately so the session
// boundary is not delayed by the timer, and clears session state. A no-op
// with a warning when no session is active.
func (c *Client) EndSession() {
	c.mu.Lock()
	sessionID := c.sessionID
	c.mu.Unlock()

	if sessionID == "" {
		c.logger.Warn("No active session to end")
		return
	}

	payload := map[string]any{
		"sessionId": sessionID,
		"timestamp": c.clock.Now().Unix(),
	}
	_ = c.RecordEventPayload("session_end", payload)

	c.Flush()

	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
	c.logger.Info("Session ended: %s", sessionID)
}

// Flush drains the queue and initiates one asynchronous batch delivery. An
// empty queue is a no-op with no network call. On delivery failure the whole
// batch goes to the offline store. Flush returns as soon as the send is
// initiated; concurrent flushes are allowed since each operates on its own
// snapshot.
func (c *Client) Flush() {
	events := c.queue.DrainAll()
	if len(events) == 0 {
		return
	}

	c.logger.Debug("Flushing %d events", len(events))
	resultCh := c.delivery.Send(trackPath, trackBatch{Events: events})

	go func() {
		result := <-resultCh
		c.settleDelivery(events, result)
	}()
}

// settleDelivery applies the delivery outcome to a drained batch.
func (c *Client) settleDelivery(events []Event, result DeliveryResult) {
	if result.Accepted() {
		metricBatchesSent.Inc()
		c.logger.Debug("Delivered batch of %d events", len(events))
		return
	}

	if !result.Success {
		metricTransportFailures.Inc()
		c.logger.Warn("Network failure delivering %d events, persisting for retry", len(events))
	} else {
		metricProtocolFailures.Inc()
		c.logger.Warn("Backend rejected batch with status %d, persisting %d events: %s",
			result.Status, len(events), result.Body)
	}

	if err := c.offline.Persist(events); err != nil {
		c.logger.Error("Failed to persist %d events, they are lost: %v", len(events), err)
	}
}

// RegisterGame asks the backend for the canonical game id. Idempotent: once
// registered (or while a registration is in flight) further calls are no-ops.
// On success all queued-but-unsent events still carrying the configured id
// are rewritten to the canonical one.
func (c *Client) RegisterGame() {
	if !c.config.configured() {
		c.logger.Error("Cannot register game, Tokebi not configured")
		return
	}

	c.mu.Lock()
	if c.registeredGameID != "" || c.registering {
		c.mu.Unlock()
		c.logger.Debug("Game already registered")
		return
	}
	c.registering = true
	c.mu.Unlock()

	resultCh := c.registration.Register(c.config.GameID, c.config.Platform, c.config.PlatformVersion)
	go func() {
		result := <-resultCh

		c.mu.Lock()
		c.registering = false
		if result.Success {
			c.registeredGameID = result.CanonicalGameID
		}
		c.mu.Unlock()

		if result.Success {
			metricRegistrations.Inc()
			c.queue.Rewrite(func(e *Event) {
				if e.GameID == c.config.GameID {
					e.GameID = result.CanonicalGameID
				}
			})
		}
	}()
}

// Shutdown stops the timers and performs one final synchronous best-effort
// flush. Events the backend does not acknowledge are persisted for the next
// start. In-flight asynchronous sends are not aborted.
func (c *Client) Shutdown() error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.initialized = false
	if c.cancelFlush != nil {
		c.cancelFlush()
		c.cancelFlush = nil
	}
	if c.cancelReplay != nil {
		c.cancelReplay()
		c.cancelReplay = nil
	}
	c.mu.Unlock()

	events := c.queue.DrainAll()
	if len(events) == 0 {
		c.logger.Info("Tokebi client shut down")
		return nil
	}

	result := <-c.delivery.Send(trackPath, trackBatch{Events: events})
	if result.Accepted() {
		metricBatchesSent.Inc()
		c.logger.Info("Tokebi client shut down, final batch of %d events delivered", len(events))
		return nil
	}

	c.settleDelivery(events, result)
	c.logger.Info("Tokebi client shut down")
	return nil
}

// SetPlayerID overrides the player identity for subsequent events and
// persists it.
func (c *Client) SetPlayerID(id string) error {
	c.mu.Lock()
	c.playerID = id
	c.mu.Unlock()
	return c.identity.storage.Write(playerIDKey, []byte(id))
}

// PlayerID returns the current player identity, empty before Init.
func (c *Client) PlayerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerID
}

// SessionID returns the active session id, empty when no session is active.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// GameID returns the game id events are currently stamped with: the canonical
// registered id when available, otherwise the configured one.
func (c *Client) GameID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameIDLocked()
}

func (c *Client) gameIDLocked() string {
	if c.registeredGameID != "" {
		return c.registeredGameID
	}
	return c.config.GameID
}

// newEventLocked builds a stamped event. Callers hold c.mu.
func (c *Client) newEventLocked(name string, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{
		EventType:   name,
		GameID:      c.gameIDLocked(),
		PlayerID:    c.playerID,
		Platform:    c.config.Platform,
		Environment: c.config.Environment,
		SessionID:   c.sessionID,
		Payload:     payload,
		Timestamp:   c.clock.Now().Unix(),
	}
}

// reconcileGameIDLocked rewrites the game id on replayed events that still
// carry the configured id after a registration changed it. Callers hold c.mu.
func (c *Client) reconcileGameIDLocked(events []Event) {
	if c.registeredGameID == "" {
		return
	}
	fixed := 0
	for i := range events {
		if events[i].GameID == c.config.GameID {
			events[i].GameID = c.registeredGameID
			fixed++
		}
	}
	if fixed > 0 {
		c.logger.Debug("Rewrote game ID on %d replayed events", fixed)
	}
}

// coerceAttributes converts string attributes into a wire payload: values
// that parse as numbers become JSON numbers (integral when possible), empty
// values are skipped.
func coerceAttributes(attrs map[string]string) map[string]any {
	payload := make(map[string]any, len(attrs))
	for key, value := range attrs {
		if value == "" {
			continue
		}
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			payload[key] = i
			continue
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			payload[key] = f
			continue
		}
		payload[key] = value
	}
	return payload
}
