package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"sync"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/gcode"
	"github.com/mastercactapus/meshmotion/level"
	"github.com/mastercactapus/meshmotion/machine"
	"github.com/mastercactapus/meshmotion/mesh"
)

type api struct {
	http.Handler

	mx       sync.Mutex
	m        *machine.Machine
	leveler  *level.Leveler
	currents *machine.MotorCurrents

	stream *stepStream
	sse    *sse.Server
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func newAPI(m *machine.Machine, lv *level.Leveler, currents *machine.MotorCurrents, stream *stepStream) *api {
	r := mux.NewRouter()

	a := &api{
		Handler:  r,
		m:        m,
		leveler:  lv,
		currents: currents,
		stream:   stream,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/run", a.run).Methods("POST")
	r.HandleFunc("/api/move", a.move).Methods("POST")
	r.HandleFunc("/api/mesh", a.getMesh).Methods("GET")
	r.HandleFunc("/api/mesh", a.putMesh).Methods("PUT")
	r.HandleFunc("/api/position", a.position).Methods("GET")
	r.HandleFunc("/api/currents", a.getCurrents).Methods("GET")
	r.HandleFunc("/ws", a.ws)
	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

func (a *api) publishState() {
	data, err := json.Marshal(struct {
		Position coord.Pose `json:"position"`
	}{Position: a.m.Position()})
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage("/events/state", sse.SimpleMessage(string(data)))
}

func (a *api) run(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	err := a.m.Run(req.Body)
	a.mx.Unlock()
	if err != nil {
		log.Printf("ERROR: run: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
	a.publishState()
}

type moveRequest struct {
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
	Z    *float64 `json:"z"`
	E    *float64 `json:"e"`
	Feed *float64 `json:"feed"`
}

// move runs a single jog move built from JSON, for manual positioning
// without composing g-code on the client.
func (a *api) move(w http.ResponseWriter, req *http.Request) {
	var mr moveRequest
	err := json.NewDecoder(req.Body).Decode(&mr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := gcode.Block{{W: 'G', Arg: 1}}
	add := func(code byte, v *float64) {
		if v != nil {
			b = append(b, gcode.Word{W: code, Arg: *v})
		}
	}
	add('X', mr.X)
	add('Y', mr.Y)
	add('Z', mr.Z)
	add('E', mr.E)
	add('F', mr.Feed)

	a.mx.Lock()
	err = a.m.RunBlocks([]gcode.Block{b})
	a.mx.Unlock()
	if err != nil {
		log.Printf("ERROR: move: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
	a.publishState()
}

type meshResponse struct {
	Config  mesh.GridConfig `json:"config"`
	Samples [][]float64     `json:"samples"`
}

func (a *api) getMesh(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	g := a.leveler.Grid()
	resp := meshResponse{Config: g.Config(), Samples: g.Samples()}
	a.mx.Unlock()

	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

type meshRequest struct {
	Probes []coord.Point `json:"probes"`
}

// putMesh rebuilds the mesh from a set of probe results and swaps it
// into the leveler.
func (a *api) putMesh(w http.ResponseWriter, req *http.Request) {
	var mr meshRequest
	err := json.NewDecoder(req.Body).Decode(&mr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.mx.Lock()
	defer a.mx.Unlock()

	g, err := mesh.FromProbes(a.leveler.Grid().Config(), mr.Probes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = a.leveler.SetGrid(g)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	err = json.NewEncoder(w).Encode(meshResponse{Config: g.Config(), Samples: g.Samples()})
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) position(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	pos := a.m.Position()
	a.mx.Unlock()

	err := json.NewEncoder(w).Encode(pos)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) getCurrents(w http.ResponseWriter, req *http.Request) {
	err := json.NewEncoder(w).Encode(struct {
		Report string `json:"report"`
	}{Report: a.currents.Report()})
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) ws(w http.ResponseWriter, req *http.Request) {
	c, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Println("ERROR: upgrade:", err)
		return
	}
	a.stream.add(c)
}
