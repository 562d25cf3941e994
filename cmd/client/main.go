// Command client is a minimal terminal client for the chat server.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	host := pflag.String("host", "localhost", "server host")
	port := pflag.Int("port", 5000, "server port")
	pflag.Parse()

	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("could not connect")
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		sc := bufio.NewScanner(conn)
		for sc.Scan() {
			fmt.Println(sc.Text())
		}
		fmt.Println("Disconnected from server.")
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		in := bufio.NewScanner(os.Stdin)
		for in.Scan() {
			lines <- in.Text()
		}
	}()

	for {
		select {
		case <-done:
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if _, err := fmt.Fprintln(conn, line); err != nil {
				log.Error().Err(err).Msg("send failed")
				return
			}
			if strings.TrimSpace(line) == "/quit" {
				<-done
				return
			}
		}
	}
}
