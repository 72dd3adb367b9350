package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/mastercactapus/meshmotion/kinematics"
	"github.com/mastercactapus/meshmotion/level"
	"github.com/mastercactapus/meshmotion/machine"
	"github.com/mastercactapus/meshmotion/mesh"
)

func main() {
	log.SetFlags(log.Lshortfile)

	addr := flag.String("addr", ":9091", "Address to bind the meshmotion server to.")
	device := flag.String("port", "", "Serial device of the printer; planned moves go to stdout when empty.")
	baud := flag.Int("baud", 115200, "Serial baud rate.")
	kin := flag.String("kinematics", "cartesian", "Kinematic profile: cartesian, corexy, delta, scara or polar.")
	originX := flag.Float64("origin-x", 0, "Mesh origin X in mm.")
	originY := flag.Float64("origin-y", 0, "Mesh origin Y in mm.")
	spacing := flag.Float64("spacing", 30, "Mesh point spacing in mm.")
	points := flag.Int("points", 7, "Mesh points per axis.")
	fade := flag.Float64("fade", 10, "Fade height in mm; 0 disables fading.")
	queueSize := flag.Int("queue", 32, "Planner queue depth in steps.")
	flag.Parse()

	var profile kinematics.Profile
	switch *kin {
	case "cartesian":
		profile = kinematics.Cartesian()
	case "corexy":
		profile = kinematics.CoreXY()
	case "delta":
		profile = kinematics.Delta()
	case "scara":
		profile = kinematics.SCARA()
	case "polar":
		profile = kinematics.Polar()
	default:
		log.Fatal("unknown kinematics: " + *kin)
	}

	grid, err := mesh.NewGrid(mesh.GridConfig{
		OriginX: *originX, OriginY: *originY,
		SpacingX: *spacing, SpacingY: *spacing,
		PointsX: *points, PointsY: *points,
	})
	if err != nil {
		log.Fatal(err)
	}

	var sink level.Sink = machine.NewWriterSink(os.Stdout)
	if *device != "" {
		s, err := machine.OpenSerial(*device, *baud)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		sink = s
	}

	// Steps buffer in a bounded queue; a full queue blocks the leveler
	// until the writer catches up.
	queue := machine.NewQueue(*queueSize)
	go queue.Drain(sink)

	stream := newStepStream()
	lv, err := level.New(level.Config{
		Grid:       grid,
		Sink:       teeSink{Sink: queue, stream: stream},
		Kinematics: profile,
		Fade:       level.FadeFactor(*fade),
	})
	if err != nil {
		log.Fatal(err)
	}

	currents := machine.NewMotorCurrents()
	m, err := machine.New(machine.Config{Leveler: lv, Currents: currents})
	if err != nil {
		log.Fatal(err)
	}

	api := newAPI(m, lv, currents, stream)

	err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
