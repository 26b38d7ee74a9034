// gametemple-server hosts the game over SSH: every connection gets its own
// game, entity manager and screen. Build:
//
//	go build -o gametemple-server ./cmd/server
//
// Usage:
//
//	./gametemple-server [-port 2222] [-key server_host_key] [-max 16]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"gametemple/internal/game"
	internalssh "gametemple/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// allowedTerms are the terminal types a client may select; anything else
// gets defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

const (
	defaultTerm = "xterm-256color"
	maxNameLen  = 16 // bytes
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (generated if absent)")
	maxSessions := flag.Int("max", 16, "Maximum concurrent sessions")
	fps := flag.Int("fps", 30, "Ticks per second")
	flag.Parse()

	signer, err := loadOrCreateHostKey(*keyFile)
	if err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()
	cfg.TickRate = time.Second / time.Duration(max(*fps, 1))
	// Sound would play on the server, not at the client.
	cfg.Mute = true

	h := &host{cfg: cfg, slots: make(chan struct{}, max(*maxSessions, 1))}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any client may connect; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("gametemple SSH server listening on :%d", *port)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(srv.ListenAndServe())
}

// host runs one game per SSH session, up to cap(slots) at a time.
type host struct {
	cfg   game.Config
	slots chan struct{}
}

// handleSession blocks for the duration of the connection so the SSH
// session stays open.
func (h *host) handleSession(s gossh.Session) {
	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	default:
		fmt.Fprintln(s, "Server is full, try again later.")
		return
	}

	tty, err := internalssh.NewTty(s)
	if err != nil {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	term := tty.Term()
	if !allowedTerms[term] {
		term = defaultTerm
	}
	screen, err := internalssh.NewScreen(tty, term)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	cfg := h.cfg
	cfg.PlayerName = sanitizeName(s.User())
	if cfg.PlayerName == "" {
		cfg.PlayerName = "guest"
	}
	cfg.Seed = time.Now().UnixNano()

	log.Printf("session %q from %s started", cfg.PlayerName, s.RemoteAddr())
	game.New(screen, cfg, game.NewSky()).Run(s.Context())
}

// sanitizeName drops control characters from an SSH user name and cuts it
// to maxNameLen bytes without splitting a rune.
func sanitizeName(name string) string {
	out := make([]byte, 0, maxNameLen)
	for _, r := range name {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxNameLen {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer, nil
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best-effort; the key still serves this run.
	if block, err := xssh.MarshalPrivateKey(key, "gametemple server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			log.Printf("save host key: %v", err)
		}
	}
	return signer, nil
}
