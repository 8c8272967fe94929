package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	times    map[string]time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{cooldown: cooldown, times: make(map[string]time.Time)}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.times[ip] = now
	return true
}

// sweep drops entries older than the cooldown
func (rl *ipRateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := now.Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

func (rl *ipRateLimiter) sweepEvery(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

// Server exposes sessions over HTTP and websocket.
type Server struct {
	cfg      Config
	sessions *SessionManager
	limiter  *ipRateLimiter
	upgrader websocket.Upgrader
}

// NewServer wires a session manager and rate limiter from cfg.
func NewServer(cfg Config) *Server {
	return &Server{
		cfg:      cfg,
		sessions: NewSessionManager(cfg.MaxSessions),
		limiter:  newIPRateLimiter(cfg.IPCooldown),
		upgrader: websocket.Upgrader{
			// Allow all origins; the game carries no credentials
			CheckOrigin:       func(r *http.Request) bool { return true },
			ReadBufferSize:    WSReadBufferSize,
			WriteBufferSize:   WSWriteBufferSize,
			EnableCompression: true,
		},
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/config", s.handleConfig)
		v1.GET("/leaderboard", s.handleLeaderboard)
	}

	router.GET(s.cfg.WebSocketPath, s.handleWebSocket)

	// Serve static client files for everything else
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.cfg.StaticDir))))

	return router
}

// Run listens on cfg.ServerAddr until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.ServerAddr, Handler: s.Handler()}

	go s.limiter.sweepEvery(ctx, LimiterSweepInterval)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	httpLog.Printf("%s[INFO]%s listening on %s (grid %dx%d, tick %s)", LogInfoColor, LogColorReset,
		s.cfg.ServerAddr, s.cfg.Game.Width, s.cfg.Game.Height, s.cfg.Game.TickDelay)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Count()})
}

func (s *Server) handleConfig(c *gin.Context) {
	g := s.cfg.Game
	c.JSON(http.StatusOK, gin.H{
		"width":      g.Width,
		"height":     g.Height,
		"tileSize":   g.TileSize,
		"maxScore":   g.MaxScore,
		"growthRate": g.GrowthRate,
		"tickMs":     g.TickDelay.Milliseconds(),
		"autoReset":  g.AutoReset,
		"queueLimit": g.QueueLimit,
	})
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	n := LeaderboardSize
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = v
	}
	c.JSON(http.StatusOK, s.sessions.Leaderboard(n))
}

func (s *Server) handleWebSocket(c *gin.Context) {
	ip := c.ClientIP()

	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		httpLog.Printf("%s[ERROR]%s ws upgrade error: %v", LogErrorColor, LogColorReset, err)
		return
	}

	// Check limits after upgrade so client can receive error messages
	if s.sessions.Full() {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	if !s.limiter.allow(ip, time.Now()) {
		sendErrorAndClose(ws, "Too many connections. Please wait and retry.")
		return
	}

	ws.EnableWriteCompression(true)

	conn := NewConn(ws)
	session, err := NewSession(conn.ID, s.cfg.Game, conn)
	if err != nil {
		httpLog.Printf("%s[ERROR]%s creating session: %v", LogErrorColor, LogColorReset, err)
		sendErrorAndClose(ws, "Could not start a game.")
		return
	}
	if err := s.sessions.Add(session); err != nil {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	httpLog.Printf("%s[INFO]%s player connected: %s (%s)", LogInfoColor, LogColorReset, conn.ID, ip)

	// Send welcome immediately so client knows its ID and the board
	_ = conn.Send(newWelcomeMsg(conn.ID, s.cfg.Game))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := session.Run(ctx); err != nil {
			httpLog.Printf("%s[ERROR]%s session %s stopped: %v", LogErrorColor, LogColorReset, session.ID, err)
			conn.Close()
		}
	}()

	// Blocking read loop, runs until client disconnects
	conn.ReadLoop(session)

	cancel()
	s.sessions.Remove(session.ID)
	conn.Close()
	httpLog.Printf("%s[INFO]%s player disconnected: %s", LogInfoColor, LogColorReset, conn.ID)
}
