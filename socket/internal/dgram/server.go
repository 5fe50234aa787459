/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package dgram

import (
	"context"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	libprm "github.com/sabouaram/ntio/file/perm"
	libptc "github.com/sabouaram/ntio/network/protocol"
	"github.com/sabouaram/ntio/reactor"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
)

// ListenFunc opens the raw, network-specific net.PacketConn for cfg. Unlike
// socket/internal/stream's ListenFunc there is no TLS parameter: TLS has no
// meaning over a connectionless socket.
type ListenFunc func(cfg sckcfg.Server) (net.PacketConn, error)

// ServerErrors is the set of sentinel errors a transport package wants the
// engine to return.
type ServerErrors struct {
	InvalidAddress  error
	InvalidHandler  error
	InvalidInstance error
	InvalidGroup    error
	ShutdownTimeout error
	GoneTimeout     error
}

// MaxGID is the highest group id RegisterSocket accepts.
const MaxGID = 32767

// inboundQueueSize bounds how many not-yet-read datagrams are buffered per
// peer before the demux loop starts dropping them.
const inboundQueueSize = 64

type session struct {
	conn *Conn
	last atomic.Int64
}

// Server is the single-socket demultiplexing engine shared by every
// connectionless transport (udp, unixgram). A per-transport package owns
// one Server, supplying its ListenFunc and sentinel errors; everything else
// - lifecycle, per-peer session tracking, idle reaping - lives here.
type Server struct {
	upd     libsck.UpdateConn
	handler libsck.HandlerFunc
	listen  ListenFunc
	errs    ServerErrors

	mu  sync.Mutex
	cfg sckcfg.Server
	pc  net.PacketConn

	running atomic.Bool
	gone    atomic.Bool
	open    atomic.Int64

	funcErr  libsck.FuncError
	funcInfo libsck.FuncInfo
	funcLog  func(string)

	stopCh chan struct{}
	doneCh chan struct{}

	sessions sync.Map // string (remote addr) -> *session
}

// NewServer constructs an idle engine bound to cfg. Listen validates cfg
// and handler before ever calling listenFn.
func NewServer(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server, listenFn ListenFunc, errs ServerErrors) *Server {
	return &Server{
		upd:     upd,
		handler: handler,
		listen:  listenFn,
		errs:    errs,
		cfg:     cfg,
	}
}

func (s *Server) RegisterFuncError(f libsck.FuncError) { s.mu.Lock(); s.funcErr = f; s.mu.Unlock() }
func (s *Server) RegisterFuncInfo(f libsck.FuncInfo)   { s.mu.Lock(); s.funcInfo = f; s.mu.Unlock() }

// RegisterFuncInfoServer registers a plain-text logging hook distinct from
// the structured FuncInfo callback.
func (s *Server) RegisterFuncInfoServer(f func(msg string)) {
	s.mu.Lock()
	s.funcLog = f
	s.mu.Unlock()
}

func (s *Server) logf(msg string) {
	s.mu.Lock()
	f := s.funcLog
	s.mu.Unlock()
	if f != nil {
		f(msg)
	}
}

func (s *Server) info(local, remote net.Addr, st libsck.ConnState) {
	s.mu.Lock()
	f := s.funcInfo
	s.mu.Unlock()
	if f != nil {
		f(local, remote, st)
	}
}

func (s *Server) errf(err error) {
	s.mu.Lock()
	f := s.funcErr
	s.mu.Unlock()
	if f != nil && err != nil {
		f(err)
	}
}

// RegisterServer updates the listening address of a not-yet-started server.
func (s *Server) RegisterServer(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return s.errs.InvalidInstance
	}
	if strings.TrimSpace(address) == "" {
		return s.errs.InvalidAddress
	}
	if err := validateAddress(s.cfg.Network, address); err != nil {
		return err
	}
	s.cfg.Address = address
	return nil
}

func validateAddress(p libptc.NetworkProtocol, addr string) error {
	if p.IsLocal() {
		_, err := net.ResolveUnixAddr(p.Code(), addr)
		return err
	}
	_, err := net.ResolveUDPAddr(p.Code(), addr)
	return err
}

// RegisterSocket is RegisterServer's Unix-domain counterpart: it also
// carries the socket file's permission bits and owning group.
func (s *Server) RegisterSocket(path string, perm libprm.Perm, gid int32) error {
	if gid < -1 || gid > MaxGID {
		return s.errs.InvalidGroup
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return s.errs.InvalidInstance
	}
	s.cfg.Address = path
	s.cfg.PermFile = perm
	s.cfg.GroupPerm = gid
	return nil
}

func (s *Server) IsRunning() bool        { return s.running.Load() }
func (s *Server) IsGone() bool           { return s.gone.Load() }
func (s *Server) OpenConnections() int64 { return s.open.Load() }

// Listener reports the network code bound, but no real net.Listener, since
// a datagram socket never produces one.
func (s *Server) Listener() (net.Listener, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pc == nil {
		return nil, s.cfg.Network.Code(), s.errs.InvalidInstance
	}
	return nil, s.cfg.Network.Code(), nil
}

// Listen validates the engine's configuration, opens the packet socket, and
// runs the demux loop until ctx is cancelled or Shutdown/Close is called.
func (s *Server) Listen(ctx context.Context) error {
	if s.handler == nil {
		return s.errs.InvalidHandler
	}

	s.mu.Lock()
	if strings.TrimSpace(s.cfg.Address) == "" {
		s.mu.Unlock()
		return s.errs.InvalidAddress
	}
	if s.running.Load() {
		s.mu.Unlock()
		return s.errs.InvalidInstance
	}

	pc, err := s.listen(s.cfg)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.pc = pc
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	idle := s.cfg.ConIdleTimeout.Time()
	s.mu.Unlock()

	if s.upd != nil {
		if nc, ok := pc.(net.Conn); ok {
			s.upd(nc)
		}
	}

	s.running.Store(true)
	s.gone.Store(false)
	s.logf("starting listening socket '" + s.cfg.Network.Code() + " " + pc.LocalAddr().String() + "'")

	var reapWG sync.WaitGroup
	var rct *reactor.Reactor
	if idle > 0 {
		if rct, err = reactor.New(0); err == nil {
			reapWG.Add(1)
			go s.reapIdle(rct, idle, &reapWG)
		}
	}

	defer func() {
		s.running.Store(false)
		if rct != nil {
			_ = rct.Close()
			reapWG.Wait()
		}
		s.closeAllSessions()
		s.gone.Store(true)
		s.logf("stopped listening socket '" + s.cfg.Network.Code() + " " + pc.LocalAddr().String() + "'")
		close(s.doneCh)
	}()

	buf := make([]byte, 65507)
	for {
		n, remote, rerr := pc.ReadFrom(buf)
		if rerr != nil {
			select {
			case <-s.stopCh:
				return nil
			default:
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.errf(rerr)
			return rerr
		}

		data := make([]byte, n)
		copy(data, buf[:n])
		s.dispatch(ctx, pc, remote, data)
	}
}

func (s *Server) dispatch(ctx context.Context, pc net.PacketConn, remote net.Addr, data []byte) {
	key := remote.String()

	if v, ok := s.sessions.Load(key); ok {
		sess := v.(*session)
		sess.last.Store(time.Now().UnixNano())
		sess.conn.deliver(data)
		return
	}

	sess := &session{}
	sess.last.Store(time.Now().UnixNano())
	conn := newConn(ctx, pc.LocalAddr(), remote, inboundQueueSize, func() {
		s.sessions.Delete(key)
		s.open.Add(-1)
		s.info(pc.LocalAddr(), remote, libsck.ConnectionClose)
	})
	sess.conn = conn

	actual, loaded := s.sessions.LoadOrStore(key, sess)
	if loaded {
		sess = actual.(*session)
		sess.conn.deliver(data)
		return
	}

	s.open.Add(1)
	s.info(pc.LocalAddr(), remote, libsck.ConnectionNew)
	conn.deliver(data)

	go func() {
		defer func() { _ = conn.Close() }()
		s.handler(conn)
	}()
}

func (s *Server) closeAllSessions() {
	s.sessions.Range(func(key, value interface{}) bool {
		sess := value.(*session)
		_ = sess.conn.Close()
		return true
	})
}

// reapIdle periodically closes peer sessions that have had no inbound
// datagram for longer than idle. It reuses the reactor's deadline-based
// Wait as its tick source instead of a bespoke timer.
func (s *Server) reapIdle(r *reactor.Reactor, idle time.Duration, wg *sync.WaitGroup) {
	defer wg.Done()

	tick := idle / 4
	if tick <= 0 {
		tick = time.Second
	}

	for {
		_, err := r.Wait(time.Now().Add(tick))
		if err != nil {
			return
		}

		now := time.Now()
		s.sessions.Range(func(key, value interface{}) bool {
			sess := value.(*session)
			last := time.Unix(0, sess.last.Load())
			if now.Sub(last) >= idle {
				_ = sess.conn.Close()
			}
			return true
		})

		select {
		case <-s.stopCh:
			return
		default:
		}
	}
}

// Shutdown stops accepting new datagrams and waits, bounded by ctx, for the
// demux loop to fully unwind.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	done := s.doneCh
	s.mu.Unlock()

	if err := s.Close(); err != nil {
		return err
	}
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return s.errs.ShutdownTimeout
	}
}

// Close stops the demux loop and closes the packet socket. Safe to call
// more than once.
func (s *Server) Close() error {
	s.mu.Lock()
	pc := s.pc
	stop := s.stopCh
	s.mu.Unlock()

	if stop != nil {
		select {
		case <-stop:
		default:
			close(stop)
		}
	}
	if pc != nil {
		return pc.Close()
	}
	return nil
}

var _ libsck.Server = (*Server)(nil)
