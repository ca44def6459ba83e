package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// newRelayCmd is the client-side line relay: a pure pass-through between the
// terminal and the server with no shared state with the core.
func newRelayCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Connect to a chat server and relay lines between the terminal and the socket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close()

			var g errgroup.Group

			// server -> stdout
			g.Go(func() error {
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					fmt.Println(scanner.Text())
				}
				return scanner.Err()
			})

			// stdin -> server
			g.Go(func() error {
				scanner := bufio.NewScanner(os.Stdin)
				w := bufio.NewWriter(conn)
				for scanner.Scan() {
					if _, err := w.WriteString(scanner.Text() + "\n"); err != nil {
						return err
					}
					if err := w.Flush(); err != nil {
						return err
					}
				}
				// stdin closed; closing the socket unblocks the reader side.
				_ = conn.Close()
				return scanner.Err()
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8888", "server address")
	return cmd
}
