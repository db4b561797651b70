package router

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/zap"
)

/*
handleWebsocket. streams evaluate requests of one planner client.

a planner re-evaluates its candidates every decision cycle, so it keeps one connection open
instead of paying an http round trip per cycle. every text frame is one evaluate request and
is answered with exactly one envelope.
*/
func (api *API) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		return
	}
	// drop the deadlines the http server set for the upgrade request.
	_ = conn.SetDeadline(time.Time{})

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)
	defer api.hub.Remove(user)

	if err := user.Serve(r.Context()); err != nil && !isClosed(err) {
		api.log.Error("error evaluating websocket request", zap.Error(err))
		return
	}
	api.log.Info("user disconnected from websocket server", zap.String("connection name", nameConn(conn)))
}

func isClosed(err error) bool {
	var closed wsutil.ClosedError
	return errors.As(err, &closed) || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
