package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/pkg/prometheus"
)

const (
	// SkipSelection is the callback value of the bathroom-photo skip button.
	SkipSelection = "skip"

	correlationIDKey = "correlation_id"
	userIDKey        = "user_id"
	stateKey         = "state"
	kindKey          = "kind"
	errorKey         = "error"

	successKey  = "success"
	rejectedKey = "rejected"
	failedKey   = "error"
)

const (
	msgChooseHotel       = "🏨 Pilih Hotel:"
	msgChooseHotelAgain  = "Pilih hotel dari daftar di atas."
	msgAskRoom           = "Masukkan Nomor Kamar / Area:"
	msgRoomEmpty         = "Nomor kamar / area tidak boleh kosong.\nMasukkan Nomor Kamar / Area:"
	msgAskRoomPhoto      = "Kirim Foto Kamar:"
	msgNeedRoomPhoto     = "Mohon kirim foto kamar."
	msgAskBathroomPhoto  = "Kirim Foto Kamar Mandi (atau lewati):"
	msgNeedBathroomPhoto = "Mohon kirim foto kamar mandi atau tekan Lewati."
	msgAskRemarks        = "Masukkan Catatan (kirim \"-\" jika tidak ada):"
	msgNeedRemarks       = "Mohon kirim catatan sebagai teks (\"-\" jika tidak ada)."
	msgSaved             = "✅ Laporan tersimpan!"
	msgResolveFailed     = "❌ Gagal mengambil tautan foto. Kirim ulang catatan untuk mencoba lagi."
	msgStoreFailed       = "❌ Gagal menyimpan laporan. Kirim ulang catatan untuk mencoba lagi."
	msgNeedStart         = "Ketik /start untuk membuat laporan baru."
	msgHelp              = "Bot ini mencatat laporan kebersihan hotel.\n" +
		"Ketik /start, pilih hotel, masukkan nomor kamar, kirim foto kamar,\n" +
		"foto kamar mandi (opsional), lalu catatan. Laporan masuk ke spreadsheet."
	skipLabel = "Lewati"
)

// Conversation advances one user's report a step at a time. It talks to the
// outside world only through the interfaces above, so transport payloads never
// reach this package.
type Conversation struct {
	sessions SessionProvider
	store    ReportStore
	media    MediaResolver
	replier  Replier
	hotels   []string
	hotelSet map[string]struct{}
	log      *slog.Logger

	userMu map[int64]*sync.Mutex
	mu     sync.Mutex
}

func NewConversation(sessions SessionProvider, store ReportStore, media MediaResolver,
	replier Replier, hotels []string, log *slog.Logger) *Conversation {

	hotelSet := make(map[string]struct{}, len(hotels))
	for _, h := range hotels {
		hotelSet[h] = struct{}{}
	}

	return &Conversation{
		sessions: sessions,
		store:    store,
		media:    media,
		replier:  replier,
		hotels:   hotels,
		hotelSet: hotelSet,
		log:      log,
		userMu:   make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serializing one user's events. Without it a
// second remarks message arriving while a save is still in flight would pass
// the StateAwaitingRemarks guard and append the report twice.
func (c *Conversation) userLock(userID int64) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.userMu[userID]; !ok {
		c.userMu[userID] = &sync.Mutex{}
	}
	return c.userMu[userID]
}

// HandleEvent is the single entry point for inbound events. It never returns
// an error: every failure is converted to a user-visible message so one bad
// event cannot take down the update loop.
func (c *Conversation) HandleEvent(ctx context.Context, event domain.Event) {
	// One user's events run strictly one at a time; users never block each
	// other.
	lock := c.userLock(event.UserID)
	lock.Lock()
	defer lock.Unlock()

	startTime := time.Now()
	defer func() {
		prometheus.EventDuration.WithLabelValues(string(event.Kind)).Observe(time.Since(startTime).
			Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.EventCounter.WithLabelValues(string(event.Kind), status).Inc()
	}()

	ctx = context.WithValue(ctx, correlationIDKey, c.sessions.CorrelationID(ctx, event.UserID))

	if event.Kind == domain.EventCommand {
		status = c.handleCommand(ctx, event)
		return
	}

	session := c.sessions.Get(ctx, event.UserID)
	if session.ReporterName == "" {
		session.ReporterName = event.ReporterName
	}

	c.log.Debug("event received",
		userIDKey, event.UserID,
		kindKey, event.Kind,
		stateKey, session.State,
		correlationIDKey, ctx.Value(correlationIDKey),
	)

	switch session.State {
	case domain.StateIdle:
		c.reply(ctx, event.UserID, msgNeedStart)
	case domain.StateAwaitingHotel:
		status = c.handleHotel(ctx, session, event)
	case domain.StateAwaitingRoom:
		status = c.handleRoom(ctx, session, event)
	case domain.StateAwaitingRoomPhoto:
		status = c.handleRoomPhoto(ctx, session, event)
	case domain.StateAwaitingBathroomPhoto:
		status = c.handleBathroomPhoto(ctx, session, event)
	case domain.StateAwaitingRemarks:
		status = c.handleRemarks(ctx, session, event)
	}
}

func (c *Conversation) handleCommand(ctx context.Context, event domain.Event) string {
	c.log.Info("command received",
		userIDKey, event.UserID,
		"command", event.Command,
		correlationIDKey, ctx.Value(correlationIDKey),
	)

	switch event.Command {
	case "start":
		c.handleStart(ctx, event)
		return successKey
	case "help":
		c.reply(ctx, event.UserID, msgHelp)
		return successKey
	default:
		c.reply(ctx, event.UserID, msgNeedStart)
		return failedKey
	}
}

// handleStart resets the user unconditionally: any in-progress report is
// discarded and the hotel keyboard is presented.
func (c *Conversation) handleStart(ctx context.Context, event domain.Event) {
	previous := c.sessions.Get(ctx, event.UserID)
	wasActive := previous.State != domain.StateIdle

	c.sessions.Reset(ctx, event.UserID)
	session := &domain.Session{
		UserID:       event.UserID,
		State:        domain.StateAwaitingHotel,
		ReporterName: event.ReporterName,
	}
	if err := c.sessions.Set(ctx, event.UserID, session); err != nil {
		c.log.Error("failed to store session",
			userIDKey, event.UserID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err,
		)
	}

	if !wasActive {
		prometheus.ActiveSessions.Inc()
	}

	choices := make([]domain.Choice, 0, len(c.hotels))
	for _, hotel := range c.hotels {
		choices = append(choices, domain.Choice{Label: hotel, Data: hotel})
	}
	c.replyWithChoices(ctx, event.UserID, msgChooseHotel, choices)
}

func (c *Conversation) handleHotel(ctx context.Context, session *domain.Session,
	event domain.Event) string {

	if event.Kind != domain.EventSelection {
		c.reply(ctx, event.UserID, msgChooseHotelAgain)
		return rejectedKey
	}
	if _, known := c.hotelSet[event.Text]; !known {
		// Out-of-list callback data can only come from a stale keyboard,
		// so it is dropped without a reply.
		c.log.Debug("unknown hotel selection ignored",
			userIDKey, event.UserID,
			"selection", event.Text,
			correlationIDKey, ctx.Value(correlationIDKey),
		)
		return rejectedKey
	}

	session.Hotel = event.Text
	session.State = domain.StateAwaitingRoom
	c.saveSession(ctx, session)
	c.reply(ctx, event.UserID, msgAskRoom)
	return successKey
}

func (c *Conversation) handleRoom(ctx context.Context, session *domain.Session,
	event domain.Event) string {

	room := strings.TrimSpace(event.Text)
	if event.Kind != domain.EventText || room == "" {
		c.reply(ctx, event.UserID, msgRoomEmpty)
		return rejectedKey
	}

	session.RoomOrArea = room
	session.State = domain.StateAwaitingRoomPhoto
	c.saveSession(ctx, session)
	c.reply(ctx, event.UserID, msgAskRoomPhoto)
	return successKey
}

func (c *Conversation) handleRoomPhoto(ctx context.Context, session *domain.Session,
	event domain.Event) string {

	if event.Kind != domain.EventPhoto || event.PhotoRef == "" {
		c.reply(ctx, event.UserID, msgNeedRoomPhoto)
		return rejectedKey
	}

	session.RoomPhotoRef = event.PhotoRef
	session.State = domain.StateAwaitingBathroomPhoto
	c.saveSession(ctx, session)
	c.replyWithChoices(ctx, event.UserID, msgAskBathroomPhoto, []domain.Choice{
		{Label: skipLabel, Data: SkipSelection},
	})
	return successKey
}

func (c *Conversation) handleBathroomPhoto(ctx context.Context, session *domain.Session,
	event domain.Event) string {

	switch {
	case event.Kind == domain.EventPhoto && event.PhotoRef != "":
		session.BathroomPhotoRef = event.PhotoRef
	case event.Kind == domain.EventSelection && event.Text == SkipSelection:
		session.BathroomPhotoRef = domain.Sentinel
	default:
		c.reply(ctx, event.UserID, msgNeedBathroomPhoto)
		return rejectedKey
	}

	session.State = domain.StateAwaitingRemarks
	c.saveSession(ctx, session)
	c.reply(ctx, event.UserID, msgAskRemarks)
	return successKey
}

// handleRemarks runs the terminal transition: store the remarks, resolve both
// photo references, append the report, and only then clear the session. Any
// failure leaves the session in StateAwaitingRemarks so resending the remarks
// retries the save without re-collecting anything.
func (c *Conversation) handleRemarks(ctx context.Context, session *domain.Session,
	event domain.Event) string {

	if event.Kind != domain.EventText {
		c.reply(ctx, event.UserID, msgNeedRemarks)
		return rejectedKey
	}

	session.Remarks = event.Text
	c.saveSession(ctx, session)

	roomLink, err := c.media.ResolveLink(ctx, session.RoomPhotoRef)
	if err != nil {
		c.log.Error("room photo resolution failed",
			userIDKey, event.UserID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err,
		)
		c.reply(ctx, event.UserID, msgResolveFailed)
		return failedKey
	}

	bathroomLink := domain.Sentinel
	if session.BathroomPhotoRef != domain.Sentinel {
		bathroomLink, err = c.media.ResolveLink(ctx, session.BathroomPhotoRef)
		if err != nil {
			c.log.Error("bathroom photo resolution failed",
				userIDKey, event.UserID,
				correlationIDKey, ctx.Value(correlationIDKey),
				errorKey, err,
			)
			c.reply(ctx, event.UserID, msgResolveFailed)
			return failedKey
		}
	}

	report := domain.Report{
		Timestamp:         time.Now(),
		Hotel:             session.Hotel,
		RoomOrArea:        session.RoomOrArea,
		RoomPhotoLink:     roomLink,
		BathroomPhotoLink: bathroomLink,
		Remarks:           session.Remarks,
		ReporterName:      session.ReporterName,
	}

	if err := c.store.Append(ctx, report); err != nil {
		c.log.Error("report append failed",
			userIDKey, event.UserID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err,
		)
		c.reply(ctx, event.UserID, msgStoreFailed)
		return failedKey
	}

	c.sessions.Reset(ctx, event.UserID)
	prometheus.ActiveSessions.Dec()
	prometheus.ReportsSaved.Inc()
	c.log.Info("report saved",
		userIDKey, event.UserID,
		"hotel", report.Hotel,
		"room", report.RoomOrArea,
		correlationIDKey, ctx.Value(correlationIDKey),
	)
	c.reply(ctx, event.UserID, msgSaved)
	return successKey
}

func (c *Conversation) saveSession(ctx context.Context, session *domain.Session) {
	if err := c.sessions.Set(ctx, session.UserID, session); err != nil {
		c.log.Error("failed to store session",
			userIDKey, session.UserID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err,
		)
	}
}

func (c *Conversation) reply(ctx context.Context, userID int64, text string) {
	if err := c.replier.Reply(ctx, userID, text); err != nil {
		c.log.Error("failed to send reply",
			userIDKey, userID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err,
		)
	}
}

func (c *Conversation) replyWithChoices(ctx context.Context, userID int64, text string,
	choices []domain.Choice) {
	if err := c.replier.ReplyWithChoices(ctx, userID, text, choices); err != nil {
		c.log.Error("failed to send reply with choices",
			userIDKey, userID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err,
		)
	}
}
