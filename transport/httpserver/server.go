package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/kazibot/kazi/internal/domain"
	"github.com/kazibot/kazi/internal/usecase"
)

const (
	emptyTwiML  = "<Response></Response>"
	apologyCopy = "Sorry, something went wrong."

	landingPage = `<!DOCTYPE html>
<html>
<head><title>Kazi</title></head>
<body><h1>Kazi</h1><p>WhatsApp assistant. Message the bot to get started.</p></body>
</html>`
)

// Pinger reports database connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AllowAll is the default authorization gate; metering lives outside this
// service and plugs in through domain.Authorizer.
type AllowAll struct{}

func (AllowAll) Allow(ctx context.Context, owner string) bool { return true }

type Server struct {
	reminderUC  *usecase.ReminderUsecase
	userUC      *usecase.UserUsecase
	replies     domain.ReplyProvider
	transcriber domain.Transcriber
	sender      domain.MessageSender
	authorizer  domain.Authorizer
	pinger      Pinger
	clk         clock.Clock
	logger      *zap.SugaredLogger

	srv *http.Server
}

func NewServer(
	addr string,
	reminderUC *usecase.ReminderUsecase,
	userUC *usecase.UserUsecase,
	replies domain.ReplyProvider,
	transcriber domain.Transcriber,
	sender domain.MessageSender,
	authorizer domain.Authorizer,
	pinger Pinger,
	clk clock.Clock,
	logger *zap.SugaredLogger,
) *Server {
	s := &Server{
		reminderUC:  reminderUC,
		userUC:      userUC,
		replies:     replies,
		transcriber: transcriber,
		sender:      sender,
		authorizer:  authorizer,
		pinger:      pinger,
		clk:         clk,
		logger:      logger,
	}
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(landingPage))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy", "db": "connected"}
	if s.pinger == nil {
		status["db"] = "none"
	} else if err := s.pinger.Ping(r.Context()); err != nil {
		status["db"] = "unreachable"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// handleWebhook receives inbound WhatsApp messages from the messaging
// provider. It always answers with empty TwiML: errors are reported to the
// user over the channel itself, never as webhook failures, so the provider
// does not retry the delivery.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	from := r.FormValue("From")
	if from == "" {
		http.Error(w, "missing From", http.StatusBadRequest)
		return
	}

	userMessage, err := s.inboundText(ctx, r)
	if err != nil {
		s.logger.Errorw("failed reading inbound message", "from", from, "err", err)
		s.reply(ctx, from, apologyCopy)
		s.writeTwiML(w)
		return
	}
	if strings.TrimSpace(userMessage) == "" {
		// Nothing to act on; answer with an empty body so the provider is
		// acknowledged without a TwiML document.
		w.Header().Set("Content-Type", "text/xml")
		return
	}

	if !s.authorizer.Allow(ctx, from) {
		s.logger.Infow("message rejected by authorization gate", "from", from)
		s.writeTwiML(w)
		return
	}

	if err := s.userUC.EnsureUser(ctx, from); err != nil {
		s.logger.Errorw("failed ensuring user", "from", from, "err", err)
	}

	if handled := s.handleTimezoneCommand(ctx, from, userMessage); handled {
		s.writeTwiML(w)
		return
	}

	s.converse(ctx, from, userMessage)
	s.writeTwiML(w)
}

// inboundText extracts the user's message, transcribing voice notes.
func (s *Server) inboundText(ctx context.Context, r *http.Request) (string, error) {
	numMedia, _ := strconv.Atoi(r.FormValue("NumMedia"))
	mediaType := r.FormValue("MediaContentType0")
	if numMedia > 0 && strings.Contains(mediaType, "audio") {
		return s.transcriber.Transcribe(ctx, r.FormValue("MediaUrl0"))
	}
	return r.FormValue("Body"), nil
}

// handleTimezoneCommand treats messages of the form "timezone <id or city>"
// as an update to the user's resolved timezone.
func (s *Server) handleTimezoneCommand(ctx context.Context, from, msg string) bool {
	fields := strings.Fields(msg)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "timezone") {
		return false
	}

	input := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg), fields[0]))
	tz, err := s.userUC.SetTimezone(ctx, from, input)
	if err != nil {
		s.logger.Warnw("failed setting timezone", "from", from, "input", input, "err", err)
		s.reply(ctx, from, "I couldn't recognize that timezone. Try an IANA name like Europe/Stockholm or a major city.")
		return true
	}

	s.reply(ctx, from, "Timezone set to "+tz+".")
	return true
}

func (s *Server) converse(ctx context.Context, from, userMessage string) {
	tz, err := s.userUC.Timezone(ctx, from)
	if err != nil {
		s.logger.Errorw("failed fetching timezone, using default", "from", from, "err", err)
		tz = domain.DefaultTimezone
	}

	localTime := s.localTime(tz)
	raw, err := s.replies.Reply(ctx, userMessage, localTime, tz)
	if err != nil {
		s.logger.Errorw("model inference failed", "from", from, "err", err)
		s.reply(ctx, from, apologyCopy)
		return
	}

	display := s.reminderUC.HandleModelReply(ctx, raw, from, tz)
	s.reply(ctx, from, display)
}

func (s *Server) localTime(tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return s.clk.Now().In(loc).Format("2006-01-02 15:04")
}

func (s *Server) reply(ctx context.Context, to, body string) {
	if err := s.sender.Send(ctx, to, body); err != nil {
		s.logger.Errorw("failed sending reply", "to", to, "err", err)
	}
}

func (s *Server) writeTwiML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(emptyTwiML))
}
