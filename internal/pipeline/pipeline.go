// Package pipeline implements the server's single-worker FIFO request
// pipeline: an accept loop that reads one framed request per
// connection and enqueues it, and a worker loop that is the sole
// mutator of volume state. Generalized from the teacher's
// per-connection-goroutine server into the spec's strict single-writer
// model, while keeping the teacher's shutdown and logging idiom.
package pipeline

import (
	"bytes"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Abdulbasit24075/omnifs/internal/logger"
	"github.com/Abdulbasit24075/omnifs/internal/wire"
)

// PollInterval is how long the worker sleeps between empty-queue checks.
const PollInterval = 10 * time.Millisecond

// Dispatcher handles one parsed request and returns the response to
// write back. It is called only from the worker goroutine, so
// implementations need no internal locking of their own state.
type Dispatcher interface {
	Dispatch(req wire.Request) wire.Response
}

type job struct {
	conn    net.Conn
	payload []byte
	traceID string
}

// Pipeline owns the listener, the FIFO queue, and the accept/worker
// goroutines.
type Pipeline struct {
	listener   net.Listener
	dispatcher Dispatcher

	mu    sync.Mutex
	queue []job

	quit chan struct{}
	wg   sync.WaitGroup
}

// New constructs a pipeline bound to an already-listening socket.
func New(ln net.Listener, d Dispatcher) *Pipeline {
	return &Pipeline{
		listener:   ln,
		dispatcher: d,
		quit:       make(chan struct{}),
	}
}

// Start launches the accept loop and the worker loop.
func (p *Pipeline) Start() {
	p.wg.Add(2)
	go p.acceptLoop()
	go p.workerLoop()
}

// Stop signals both loops to exit and closes the listener. In-flight
// requests are allowed to complete.
func (p *Pipeline) Stop() {
	close(p.quit)
	p.listener.Close()
	p.wg.Wait()
}

// acceptLoop is the single accept thread: for each connection it reads
// up to one buffer's worth of bytes inline and pushes the result onto
// the FIFO queue before accepting the next connection, matching the
// reference server's single-threaded accept-and-read loop.
func (p *Pipeline) acceptLoop() {
	defer p.wg.Done()
	for {
		conn, err := p.listener.Accept()
		if err != nil {
			select {
			case <-p.quit:
				return
			default:
				logger.Warn("accept error: %v", err)
				continue
			}
		}
		p.readOne(conn)
	}
}

func (p *Pipeline) readOne(conn net.Conn) {
	traceID := uuid.NewString()
	buf := make([]byte, wire.MaxPayload)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		logger.Debug("connection %s: read failed or empty: %v", traceID, err)
		conn.Close()
		return
	}
	payload := bytes.TrimRight(buf[:n], "\x00")

	p.mu.Lock()
	p.queue = append(p.queue, job{conn: conn, payload: payload, traceID: traceID})
	p.mu.Unlock()
}

func (p *Pipeline) workerLoop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		default:
		}

		j, ok := p.pop()
		if !ok {
			time.Sleep(PollInterval)
			continue
		}
		p.handle(j)
	}
}

func (p *Pipeline) pop() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return job{}, false
	}
	j := p.queue[0]
	p.queue = p.queue[1:]
	return j, true
}

func (p *Pipeline) handle(j job) {
	defer j.conn.Close()

	req, err := wire.Parse(j.payload)
	if err != nil {
		logger.Warn("connection %s: malformed request: %v", j.traceID, err)
		resp := wire.Error("", "malformed request", 0)
		p.write(j, resp)
		return
	}

	logger.Debug("connection %s: dispatching %s request_id=%s", j.traceID, req.Operation, req.RequestID)
	resp := p.dispatcher.Dispatch(req)
	p.write(j, resp)
}

func (p *Pipeline) write(j job, resp wire.Response) {
	out, err := wire.Encode(resp)
	if err != nil {
		logger.Error("connection %s: failed to encode response: %v", j.traceID, err)
		return
	}
	if _, err := j.conn.Write(out); err != nil {
		logger.Warn("connection %s: failed to write response: %v", j.traceID, err)
	}
}
