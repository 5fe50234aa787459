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

package stream

import (
	"context"
	"crypto/tls"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	libptc "github.com/sabouaram/ntio/network/protocol"
	"github.com/sabouaram/ntio/reactor"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"

	libtls "github.com/sabouaram/ntio/certificates"
	libprm "github.com/sabouaram/ntio/file/perm"
)

// ListenFunc opens the raw, network-specific net.Listener for cfg. tlsCfg
// is non-nil when cfg.TLS is enabled; the transport package decides how to
// layer it (tls.NewListener for tcp, left unused for unix).
type ListenFunc func(cfg sckcfg.Server, tlsCfg *tls.Config) (net.Listener, error)

// ServerErrors is the set of sentinel errors a transport package wants the
// engine to return, so messages keep reading as "socket/server/tcp: ..."
// instead of a shared "socket/internal/stream: ..." string.
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

type trackedConn struct {
	conn *Conn
	last atomic.Int64
}

// Server is the accept-loop engine shared by every connection-oriented
// transport (tcp, unix). A per-transport package owns one Server, supplying
// its ListenFunc and sentinel errors; everything else - lifecycle,
// AcceptQueue wiring, idle reaping, connection counting - lives here.
type Server struct {
	upd     libsck.UpdateConn
	handler libsck.HandlerFunc
	listen  ListenFunc
	errs    ServerErrors

	mu  sync.Mutex
	cfg sckcfg.Server
	ln  net.Listener

	running atomic.Bool
	gone    atomic.Bool
	open    atomic.Int64

	accept *libsck.AcceptQueue

	funcErr  libsck.FuncError
	funcInfo libsck.FuncInfo
	funcLog  func(string)

	stopCh chan struct{}
	doneCh chan struct{}

	conns sync.Map // *Conn -> *trackedConn
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
		accept:  libsck.NewAcceptQueue(0, 0),
	}
}

func (s *Server) RegisterFuncError(f libsck.FuncError) { s.mu.Lock(); s.funcErr = f; s.mu.Unlock() }
func (s *Server) RegisterFuncInfo(f libsck.FuncInfo)   { s.mu.Lock(); s.funcInfo = f; s.mu.Unlock() }

// RegisterFuncInfoServer registers a plain-text logging hook distinct from
// the structured FuncInfo callback, for transports that want a one-line
// human log of lifecycle events.
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

// RegisterServer updates the listening address of a not-yet-started
// server. Transport packages exposing address-less construction (tests
// registering the address post New) call this before Listen.
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

// validateAddress resolves addr the way p's family expects, catching
// malformed hosts and out-of-range ports before a transport ever tries to
// bind them.
func validateAddress(p libptc.NetworkProtocol, addr string) error {
	switch {
	case p.IsLocal():
		_, err := net.ResolveUnixAddr(p.Code(), addr)
		return err
	case p.IsDatagram():
		_, err := net.ResolveUDPAddr(p.Code(), addr)
		return err
	default:
		_, err := net.ResolveTCPAddr(p.Code(), addr)
		return err
	}
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

// SetTLS toggles TLS on a not-yet-started server.
func (s *Server) SetTLS(enabled bool, cfg libtls.TLSConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.TLS.Enabled = enabled
	if enabled {
		if cfg == nil {
			return s.errs.InvalidInstance
		}
		(&s.cfg).DefaultTLS(cfg)
	}
	return nil
}

func (s *Server) IsRunning() bool        { return s.running.Load() }
func (s *Server) IsGone() bool           { return s.gone.Load() }
func (s *Server) OpenConnections() int64 { return s.open.Load() }

// Listener exposes the live net.Listener, its network name, and any error
// recorded while opening it.
func (s *Server) Listener() (net.Listener, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil, s.cfg.Network.Code(), s.errs.InvalidInstance
	}
	return s.ln, s.cfg.Network.Code(), nil
}

// Listen validates the engine's configuration, opens the listener, and
// runs the accept loop until ctx is cancelled or Shutdown/Close is called.
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

	var tlsCfg *tls.Config
	if ok, cfg := s.cfg.GetTLS(); ok {
		tlsCfg = cfg.TlsConfig("")
	}

	ln, err := s.listen(s.cfg, tlsCfg)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.ln = ln
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	idle := s.cfg.ConIdleTimeout.Time()
	s.mu.Unlock()

	s.running.Store(true)
	s.gone.Store(false)
	s.logf("listening on " + ln.Addr().String())

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
		s.gone.Store(true)
		s.logf("stopped listening on " + ln.Addr().String())
		close(s.doneCh)
	}()

	for {
		conn, aerr := ln.Accept()
		if aerr != nil {
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
			s.errf(aerr)
			return aerr
		}

		s.accept.Push(conn)
		go s.serveOne(ctx, conn)
	}
}

func (s *Server) serveOne(ctx context.Context, nc net.Conn) {
	_, _, _ = s.accept.Pop()

	tracked := &trackedConn{}
	tracked.last.Store(time.Now().UnixNano())

	c := NewConn(ctx, nc, func() { tracked.last.Store(time.Now().UnixNano()) })
	tracked.conn = c

	s.conns.Store(c, tracked)
	s.open.Add(1)
	s.info(nc.LocalAddr(), nc.RemoteAddr(), libsck.ConnectionNew)

	if s.upd != nil {
		s.upd(nc)
	}

	defer func() {
		_ = c.Close()
		s.conns.Delete(c)
		s.open.Add(-1)
		s.info(nc.LocalAddr(), nc.RemoteAddr(), libsck.ConnectionClose)
	}()

	s.handler(c)
}

// reapIdle periodically closes connections that have had no read/write
// progress for longer than idle. It reuses the reactor's deadline-based
// Wait as its tick source instead of a bespoke timer, since no descriptor
// is ever attached the call degrades to a plain sleep-until-deadline.
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
		s.conns.Range(func(key, value interface{}) bool {
			tc := value.(*trackedConn)
			last := time.Unix(0, tc.last.Load())
			if now.Sub(last) >= idle {
				_ = tc.conn.Close()
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

// Shutdown stops accepting new connections and waits, bounded by ctx, for
// the accept loop to fully unwind.
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

// Close stops the accept loop and closes the listener. Safe to call more
// than once.
func (s *Server) Close() error {
	s.mu.Lock()
	ln := s.ln
	stop := s.stopCh
	s.mu.Unlock()

	if stop != nil {
		select {
		case <-stop:
		default:
			close(stop)
		}
	}
	if ln != nil {
		return ln.Close()
	}
	return nil
}

var _ libsck.Server = (*Server)(nil)
