package web

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the DNS-SD type sketchpad servers advertise.
const ServiceType = "_sketchpad._tcp"

// Advertise announces a server on port to the local network. Shut the
// returned server down to withdraw the record.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, []string{"path=/"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Peer is a sketchpad server found on the network.
type Peer struct {
	Name string
	Addr string
}

// URL is the page address of the peer.
func (p Peer) URL() string { return "http://" + p.Addr + "/" }

// Discover queries the network for sketchpad servers for up to timeout.
func Discover(timeout time.Duration) ([]Peer, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout

	errc := make(chan error, 1)
	go func() {
		errc <- mdns.Query(params)
		close(entries)
	}()

	var peers []Peer
	seen := map[string]bool{}
	for e := range entries {
		if e.AddrV4 == nil || e.Port == 0 {
			continue
		}
		addr := fmt.Sprintf("%s:%d", e.AddrV4, e.Port)
		if seen[addr] {
			continue
		}
		seen[addr] = true
		peers = append(peers, Peer{Name: e.Name, Addr: addr})
	}
	if err := <-errc; err != nil {
		return peers, fmt.Errorf("mdns query: %w", err)
	}
	return peers, nil
}
