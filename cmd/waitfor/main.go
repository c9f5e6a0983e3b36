// waitfor blocks until every given TCP endpoint accepts connections. Used by
// the compose setup to hold the server back until mongo and the pubsub
// emulator are up.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"strings"
	"time"
)

const (
	attempts    = 20
	dialTimeout = 10 * time.Second
)

func main() {
	endpoints := flag.String("endpoints", "localhost:27017", "comma-separated host:port endpoints to wait for")
	flag.Parse()

	for _, endpoint := range strings.Split(*endpoints, ",") {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			continue
		}
		waitFor(endpoint)
	}
}

func waitFor(endpoint string) {
	for i := 0; i < attempts; i++ {
		conn, err := net.DialTimeout("tcp", endpoint, dialTimeout)
		if err == nil {
			conn.Close()
			fmt.Printf("TCP connection available on [%s]\n", endpoint)
			return
		}
		fmt.Printf("connection not yet available on [%s]: %v\n", endpoint, err)
		time.Sleep(1 * time.Second)
	}
	log.Panicf("could not open TCP connection to [%s] after %d attempts.", endpoint, attempts)
}
