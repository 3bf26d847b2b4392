// C:/workspace/go/Marine-Simulator-Go/api/server.go
package api

import (
	"Marine-Simulator/simulation"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ViewerServer 通过 websocket 向可视化前端广播环境快照。
// 它是纯只读的旁路通道，不会反向影响仿真。
type ViewerServer struct {
	addr     string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewViewerServer 是 ViewerServer 的构造函数。
func NewViewerServer(addr string) *ViewerServer {
	return &ViewerServer{
		addr: addr,
		upgrader: websocket.Upgrader{
			// 本地可视化工具，不做跨域限制
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Run 启动 websocket 服务并阻塞。应在独立的 goroutine 中调用。
func (vs *ViewerServer) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", vs.handleWS)

	log.Printf("🖥️  可视化服务已启动: ws://%s/ws", vs.addr)
	return http.ListenAndServe(vs.addr, mux)
}

// handleWS 把一个 HTTP 连接升级为 websocket 并注册为订阅者。
func (vs *ViewerServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := vs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ websocket 升级失败: %v", err)
		return
	}

	vs.mu.Lock()
	vs.clients[conn] = struct{}{}
	n := len(vs.clients)
	vs.mu.Unlock()
	log.Printf("🖥️  可视化客户端已接入 (%s)，当前连接数: %d", conn.RemoteAddr(), n)

	// 订阅者不需要发送任何数据，读循环只用于感知连接关闭
	go func() {
		defer vs.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// drop 注销并关闭一个订阅者连接。
func (vs *ViewerServer) drop(conn *websocket.Conn) {
	vs.mu.Lock()
	delete(vs.clients, conn)
	vs.mu.Unlock()
	_ = conn.Close()
}

// Broadcast 把一个环境快照以 JSON 形式推送给所有订阅者。
// 写失败的连接会被直接注销，不影响其余订阅者。
func (vs *ViewerServer) Broadcast(snap simulation.Snapshot) {
	vs.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(vs.clients))
	for c := range vs.clients {
		conns = append(conns, c)
	}
	vs.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(snap); err != nil {
			vs.drop(c)
		}
	}
}

// ClientCount 返回当前订阅者数量。
func (vs *ViewerServer) ClientCount() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.clients)
}
