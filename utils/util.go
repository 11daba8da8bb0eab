package utils

import (
	"log"
	"net"
	"strconv"
	"strings"
)

// ListenAddr builds a host:port bind address; an empty host means all
// interfaces.
func ListenAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func MustPort(addr string) int {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		if strings.HasPrefix(addr, ":") {
			v, _ := strconv.Atoi(addr[1:])
			return v
		}
		log.Fatalf("invalid addr %q: %v", addr, err)
	}
	v, err := strconv.Atoi(p)
	if err != nil {
		log.Fatalf("invalid port in %q: %v", addr, err)
	}
	return v
}
