// Command invitelink prints a personalized invitation link for each guest
// name given on the command line, with a QR code to scan.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"invitation/internal/config"
	"invitation/internal/invite"

	"github.com/skip2/go-qrcode"
)

func main() {
	noQR := flag.Bool("no-qr", false, "print links only")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: invitelink [-no-qr] <guest name>...")
		os.Exit(2)
	}

	cfg, err := config.LoadLink()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	signer := invite.NewSigner(cfg.InviteSecret)

	for _, guest := range flag.Args() {
		guest = strings.TrimSpace(guest)
		if guest == "" {
			continue
		}

		id, err := signer.Issue(guest, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error signing invitation for %s: %v\n", guest, err)
			os.Exit(1)
		}
		link, err := invite.Link{InvitationID: id, GuestName: guest}.URL(cfg.BaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building link: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s\n%s\n", guest, link)
		if *noQR {
			fmt.Println()
			continue
		}
		q, err := qrcode.New(link, qrcode.Medium)
		if err != nil {
			fmt.Printf("QR code unavailable: %v\n\n", err)
			continue
		}
		fmt.Println(q.ToSmallString(false))
	}
}
