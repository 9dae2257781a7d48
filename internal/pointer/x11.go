package pointer

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"glyphfield/internal/vmath"
)

// X11Source queries the global pointer position from the X server root window.
// It works when the stage window never receives input events, e.g. when it sits
// below the desktop as a wallpaper.
type X11Source struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window
}

// NewX11Source connects to the display named by $DISPLAY.
func NewX11Source() (*X11Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	return &X11Source{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

func (s *X11Source) Position() (vmath.Vec2, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		return vmath.Vec2{}, err
	}

	return vmath.Vec2{X: float64(reply.RootX), Y: float64(reply.RootY)}, nil
}

// Close releases the X connection.
func (s *X11Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.Close()
}
