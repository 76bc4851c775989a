package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a player connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// PlayerID is assigned when the client joins a room
	PlayerID string

	// Name is the chosen display name
	Name string

	runner *runner
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, name string) *Client {
	return &Client{
		send:  make(chan interface{}, 256),
		Close: make(chan string),
		Conn:  conn,
		Name:  name,
	}
}

// Send sends a message to the web client
// It returns false if the client's buffer is full, which the caller treats as
// a dead connection
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outbound messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	code := ""
	if c.runner != nil {
		code = c.runner.room.Code()
	}

	return fmt.Sprintf("%s:%s", c.PlayerID, code)
}
