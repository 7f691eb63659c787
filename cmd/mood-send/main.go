package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/lixenwraith/mood-eye/command"
	"github.com/lixenwraith/mood-eye/theme"
)

var (
	portFlag     = flag.String("port", "/dev/serial0", "Serial device")
	baudFlag     = flag.Int("baud", command.DefaultBaud, "Baud rate")
	prefixFlag   = flag.String("prefix", "", "Prefix written before each mood, e.g. MOOD:")
	intervalFlag = flag.Duration("interval", 0, "Pause between moods when sending several")
	listFlag     = flag.Bool("list", false, "List serial ports and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mood-send [flags] mood...\nMoods: %v\n", theme.All())
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listFlag {
		ports, err := serial.GetPortsList()
		if err != nil {
			fmt.Fprintf(os.Stderr, "mood-send: %v\n", err)
			os.Exit(1)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	moods, err := command.ParseMoods(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "mood-send: %v\n", err)
		os.Exit(2)
	}

	port, err := serial.Open(*portFlag, command.SerialMode(*baudFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mood-send: open %s: %v\n", *portFlag, err)
		os.Exit(1)
	}
	defer port.Close()

	if err := send(port, *prefixFlag, moods, *intervalFlag, time.Sleep); err != nil {
		fmt.Fprintf(os.Stderr, "mood-send: %v\n", err)
		os.Exit(1)
	}
}

// send writes one newline terminated line per mood
func send(w io.Writer, prefix string, moods []theme.Emotion, interval time.Duration, sleep func(time.Duration)) error {
	for i, m := range moods {
		if i > 0 && interval > 0 {
			sleep(interval)
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, m); err != nil {
			return errors.Wrapf(err, "send %s", m)
		}
	}
	return nil
}
