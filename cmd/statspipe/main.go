package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/statspipe/statspipe"
)

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		usage()
	}

	switch cmd, args := args[0], args[1:]; cmd {
	case "add", "set", "time", "event":
		client(cmd, args...)
	case "agent":
		server(args...)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: statspipe [command] [arguments...]

commands:
 - add
 - agent
 - event
 - help
 - set
 - time

`)
	os.Exit(1)
}

func client(cmd string, args ...string) {
	fset := flag.NewFlagSet("statspipe "+cmd+" [options...] metric value [-- args...]", flag.ExitOnError)
	var extra []string
	var tags tags
	var addr string
	var flavorName string
	var rate float64
	var name string
	var value float64
	var err error

	args, extra = split(args, "--")
	fset.StringVar(&addr, "addr", "localhost:8125", "The network address where a collector is listening for incoming UDP datagrams")
	fset.StringVar(&flavorName, "flavor", "datadog", "The collector flavor: statsd, datadog, statsite or other")
	fset.Float64Var(&rate, "rate", 1, "The sample rate applied to the metric")
	fset.Var(&tags, "tags", "A comma-separated list of tags to set on the metric")
	fset.Parse(args)
	args = fset.Args()

	flavor, err := statspipe.ParseFlavor(flavorName)
	if err != nil {
		errorf("%s", err)
	}

	host, port := splitAddress(addr)
	backend := statspipe.NewBackendWith(statspipe.BackendConfig{
		Host:   host,
		Port:   port,
		Flavor: flavor,
	})
	defer backend.Close()

	if len(args) == 0 {
		errorf("missing metric name")
	}
	name, args = args[0], args[1:]

	m := statspipe.Metric{Name: name, SampleRate: rate, Tags: tags}

	switch cmd {
	case "add":
		if len(args) == 0 {
			value = 1.0
		} else if value, err = strconv.ParseFloat(args[0], 64); err != nil {
			errorf("bad metric value: %s", args[0])
		}
		m.Kind = statspipe.CounterType
		m.Value = statspipe.ValueOf(value)

	case "set":
		if len(args) == 0 {
			errorf("missing metric value")
		} else if value, err = strconv.ParseFloat(args[0], 64); err != nil {
			errorf("bad metric value: %s", args[0])
		}
		m.Kind = statspipe.GaugeType
		m.Value = statspipe.ValueOf(value)

	case "time":
		start := time.Now()
		run(extra...)
		m.Kind = statspipe.TimingType
		m.Value = statspipe.ValueOf(time.Since(start))

	case "event":
		if len(args) == 0 {
			errorf("missing event text")
		}
		m.Kind = statspipe.EventType
		m.Value = statspipe.ValueOf(args[0])
	}

	if err := backend.Collect(m); err != nil {
		errorf("%s", err)
	}
}

func server(args ...string) {
	fset := flag.NewFlagSet("statspipe agent [options...]", flag.ExitOnError)
	var bind string

	fset.StringVar(&bind, "bind", ":8125", "The network address to listen on for incoming UDP datagrams")
	fset.Parse(args)
	log.Printf("listening for incoming UDP datagrams on %s", bind)

	statspipe.ListenAndServe(bind, statspipe.HandlerFunc(func(m statspipe.Metric, a net.Addr) {
		f := statspipe.Formatter{Flavor: statspipe.Datadog}
		if m.Kind == statspipe.KeyValueType {
			f.Flavor = statspipe.Statsite
		}
		if s, err := f.Format(m); err == nil {
			log.Print(strings.TrimSuffix(s, "\n"))
		}
	}))
}

func run(args ...string) {
	if len(args) == 0 {
		errorf("missing command line")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		errorf("%s", err)
	}
}

func errorf(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func split(args []string, sep string) (head, tail []string) {
	for i, a := range args {
		if a == sep {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func splitAddress(addr string) (host string, port int) {
	host, portString, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0
	}
	port, err = strconv.Atoi(portString)
	if err != nil {
		errorf("bad port: %s", portString)
	}
	return host, port
}

type tags []string

func (tags tags) String() string {
	return strings.Join(tags, ",")
}

func (tags *tags) Set(s string) error {
	for _, tag := range strings.Split(s, ",") {
		if len(tag) != 0 {
			*tags = append(*tags, tag)
		}
	}
	return nil
}
