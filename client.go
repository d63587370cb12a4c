package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 20
)

// outbound is one queued websocket frame
type outbound struct {
	data   []byte
	binary bool
}

// Client is a spectator WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan outbound
	remoteAddr string
	msgCount   int
	msgResetAt time.Time

	mu     sync.Mutex
	battle *Game
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan outbound, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// allowMessage applies the per-second control message budget
func (c *Client) allowMessage(now time.Time) bool {
	if now.After(c.msgResetAt) {
		c.msgCount = 0
		c.msgResetAt = now.Add(time.Second)
	}
	c.msgCount++
	return c.msgCount <= maxMessagesPerSec
}

// ReadPump reads control messages until the spectator goes away
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Release(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed: ws error: %v", err)
			}
			return
		}
		if !c.allowMessage(time.Now()) {
			log.Printf("feed: %s over %d messages/s, disconnecting", c.remoteAddr, maxMessagesPerSec)
			return
		}
		c.handleMessage(message)
	}
}

// WritePump owns all writes to the connection: queued frames and pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			kind := websocket.TextMessage
			if msg.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, msg.data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue hands a frame to WritePump. Slow spectators lose frames instead
// of stalling the battle; a send after the hub closed the queue is dropped.
func (c *Client) enqueue(msg outbound) {
	defer func() { recover() }()
	select {
	case c.send <- msg:
	default:
	}
}

// SendJSON queues a JSON envelope
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("feed: marshal error: %v", err)
		return
	}
	c.enqueue(outbound{data: data})
}

// SendBinary queues an encoded effect batch
func (c *Client) SendBinary(data []byte) {
	c.enqueue(outbound{data: data, binary: true})
}

// watch subscribes the client to a battle's effect feed
func (c *Client) watch(g *Game) bool {
	c.leave()
	if !g.Subscribe(c) {
		return false
	}
	c.mu.Lock()
	c.battle = g
	c.mu.Unlock()
	c.SendJSON(Envelope{T: MsgWatching, Data: WatchingMsg{Battle: g.ID, Frame: g.Frame()}})
	return true
}

// leave drops the current subscription, if any
func (c *Client) leave() {
	c.mu.Lock()
	g := c.battle
	c.battle = nil
	c.mu.Unlock()
	if g != nil {
		g.Unsubscribe(c)
	}
}

func (c *Client) watching() *Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.battle
}

// handleMessage routes incoming messages
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("feed: unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgList:
		c.SendJSON(Envelope{T: MsgBattles, Data: c.hub.battles.ListBattles()})
	case MsgSummary:
		g := c.watching()
		if g == nil {
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "not watching a battle"}})
			return
		}
		c.SendJSON(Envelope{T: MsgSummary, Data: g.Summary()})
	case MsgLeave:
		c.leave()
	}
}
