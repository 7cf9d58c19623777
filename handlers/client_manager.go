package handlers

import (
	"context"
	"sync"
)

// ClientManager manages connected clients
type ClientManager struct {
	clients map[string]*ClientHandler // Map PlayerID to ClientHandler
	conns   map[*ClientHandler]struct{}
	closing bool
	mutex   sync.RWMutex

	// one per running connection handler
	handlers sync.WaitGroup
}

// NewClientManager creates a new client manager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
		conns:   make(map[*ClientHandler]struct{}),
	}
}

// attach registers a running connection. It fails once Shutdown has begun.
func (cm *ClientManager) attach(handler *ClientHandler) bool {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	if cm.closing {
		return false
	}
	cm.conns[handler] = struct{}{}
	cm.handlers.Add(1)
	return true
}

// detach is called by a handler after its logout work is done
func (cm *ClientManager) detach(handler *ClientHandler) {
	cm.mutex.Lock()
	delete(cm.conns, handler)
	cm.mutex.Unlock()
	cm.handlers.Done()
}

// AddClient adds a client to the manager
func (cm *ClientManager) AddClient(playerID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.clients[playerID] = handler
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(playerID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, playerID)
}

// Count returns the number of logged in clients
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// ExecuteOnAllClients executes a function for each connected client
func (cm *ClientManager) ExecuteOnAllClients(action func(*ClientHandler)) {
	cm.mutex.RLock()
	clients := make([]*ClientHandler, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	cm.mutex.RUnlock()

	for _, client := range clients {
		action(client)
	}
}

// Shutdown refuses new connections, closes the open ones and waits until
// their handlers have logged out, or until ctx is done.
func (cm *ClientManager) Shutdown(ctx context.Context) error {
	cm.mutex.Lock()
	cm.closing = true
	for handler := range cm.conns {
		handler.conn.Close()
	}
	cm.mutex.Unlock()

	done := make(chan struct{})
	go func() {
		cm.handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
