package pgnotify

import "github.com/lib/pq"

func (h *Hub) OnListenerEvent(ev pq.ListenerEventType, err error) {
	h.onListenerEvent(ev, err)
}
