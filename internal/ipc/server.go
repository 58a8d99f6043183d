package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/chibidesk/chibi/internal/manager"
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/store"
	"go.uber.org/zap"
)

// connTimeout bounds how long a single request/response exchange may take.
const connTimeout = 10 * time.Second

// Server dispatches control-socket requests to the manager and store.
type Server struct {
	mgr   *manager.Manager
	store *store.Store
	log   *zap.Logger
	ln    net.Listener
}

// NewServer creates a Server over the given manager and store.
func NewServer(mgr *manager.Manager, st *store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{mgr: mgr, store: st, log: log}
}

// Listen binds the unix socket, replacing a stale socket file from a dead
// daemon if one is in the way.
func (s *Server) Listen(socket string) error {
	if socket == "" {
		socket = SocketPath()
	}
	if err := os.MkdirAll(filepath.Dir(socket), 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}

	ln, err := net.Listen("unix", socket)
	if err != nil {
		// A leftover socket file from a crashed daemon refuses the bind.
		// If nothing answers a ping there, remove it and retry.
		if c, dialErr := net.DialTimeout("unix", socket, time.Second); dialErr == nil {
			c.Close()
			return fmt.Errorf("another daemon is already listening on %s", socket)
		}
		os.Remove(socket)
		ln, err = net.Listen("unix", socket)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", socket, err)
		}
	}
	s.ln = ln
	s.log.Info("control socket ready", zap.String("socket", socket))
	return nil
}

// Serve accepts connections until ctx is cancelled or the listener closes.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return fmt.Errorf("server is not listening")
	}

	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handleConn(conn)
	}
}

// Close shuts the listener down and removes the socket file.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

// handleConn reads one request, executes it, and writes one response.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connTimeout))

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		s.log.Warn("bad request", zap.Error(err))
		json.NewEncoder(conn).Encode(Response{Error: "malformed request"})
		return
	}

	resp := s.dispatch(req)
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

// dispatch executes one request against the manager/store.
func (s *Server) dispatch(req Request) Response {
	switch req.Op {
	case OpPing:
		return Response{OK: true}

	case OpSpawn:
		layer := model.LayerBottom
		if req.Layer != "" {
			var err error
			layer, err = model.ParseLayer(req.Layer)
			if err != nil {
				return errResponse(err)
			}
		}
		sprite, err := s.mgr.Spawn(manager.SpawnOptions{
			ImagePath:    req.Image,
			Layer:        layer,
			Size:         req.Size,
			X:            req.X,
			Y:            req.Y,
			ClickThrough: req.ClickThrough,
			Drag:         req.Drag,
		})
		if err != nil {
			return errResponse(err)
		}
		return Response{OK: true, Sprite: &sprite}

	case OpDespawn:
		if err := s.mgr.Despawn(req.ID); err != nil {
			return errResponse(err)
		}
		return Response{OK: true}

	case OpList:
		sprites := s.mgr.List()
		return Response{OK: true, Sprites: sprites, Count: len(sprites)}

	case OpToggle:
		sprite, err := s.mgr.Toggle(req.ID, req.Flag)
		if err != nil {
			return errResponse(err)
		}
		return Response{OK: true, Sprite: &sprite}

	case OpMove:
		sprite, err := s.mgr.Move(req.ID, req.X, req.Y)
		if err != nil {
			return errResponse(err)
		}
		return Response{OK: true, Sprite: &sprite}

	case OpSave:
		snap := s.mgr.Snapshot()
		if err := s.store.Save(snap); err != nil {
			return errResponse(err)
		}
		return Response{OK: true, Count: len(snap.Sprites), Path: s.store.Path()}

	case OpRestore:
		snap, err := s.store.Load()
		if err != nil {
			return errResponse(err)
		}
		restored := s.mgr.Restore(snap)
		return Response{OK: true, Count: restored}

	default:
		return Response{Error: fmt.Sprintf("unknown op: %q", req.Op)}
	}
}

func errResponse(err error) Response {
	return Response{Error: err.Error()}
}
