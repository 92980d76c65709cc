package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

var (
	utterancesProcessed atomic.Int64
	utterancesDoctor    atomic.Int64
	utterancesPatient   atomic.Int64
	utterancesUnknown   atomic.Int64
	emptyAnalyses       atomic.Int64
	similarityQueries   atomic.Int64
	similarityMatches   atomic.Int64
	corpusSize          atomic.Int64
	activeSessions      atomic.Int64
	finalReports        atomic.Int64
	renderFailures      atomic.Int64
)

// ObserveUtterance counts one processed utterance by speaker role.
func ObserveUtterance(role string, empty bool) {
	utterancesProcessed.Add(1)
	switch role {
	case "doctor":
		utterancesDoctor.Add(1)
	case "patient":
		utterancesPatient.Add(1)
	default:
		utterancesUnknown.Add(1)
	}
	if empty {
		emptyAnalyses.Add(1)
	}
}

func ObserveSimilarity(matches int) {
	similarityQueries.Add(1)
	similarityMatches.Add(int64(matches))
}

func SetCorpusSize(n int) {
	corpusSize.Store(int64(n))
}

func SetActiveSessions(n int) {
	activeSessions.Store(int64(n))
}

func IncFinalReports() {
	finalReports.Add(1)
}

func IncRenderFailures() {
	renderFailures.Add(1)
}

type metric struct {
	name  string
	help  string
	kind  string
	value *atomic.Int64
}

var exported = []metric{
	{"scribe_utterances_processed_total", "Utterances merged into a report.", "counter", &utterancesProcessed},
	{"scribe_utterances_doctor_total", "Utterances attributed to the doctor.", "counter", &utterancesDoctor},
	{"scribe_utterances_patient_total", "Utterances attributed to the patient.", "counter", &utterancesPatient},
	{"scribe_utterances_unknown_speaker_total", "Utterances with an unrecognized speaker label.", "counter", &utterancesUnknown},
	{"scribe_empty_analyses_total", "Utterances that produced no extracted fields.", "counter", &emptyAnalyses},
	{"scribe_similarity_queries_total", "Similar-case lookups performed.", "counter", &similarityQueries},
	{"scribe_similarity_matches_total", "Similar cases returned across all lookups.", "counter", &similarityMatches},
	{"scribe_case_corpus_size", "Case records currently loaded.", "gauge", &corpusSize},
	{"scribe_active_sessions", "Sessions held in memory.", "gauge", &activeSessions},
	{"scribe_final_reports_total", "Final reports exported.", "counter", &finalReports},
	{"scribe_render_failures_total", "Render requests that failed.", "counter", &renderFailures},
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	write(w)
}

func write(w io.Writer) {
	for _, m := range exported {
		fmt.Fprintf(w, "# HELP %s %s\n", m.name, m.help)
		fmt.Fprintf(w, "# TYPE %s %s\n", m.name, m.kind)
		fmt.Fprintf(w, "%s %d\n", m.name, m.value.Load())
	}
}
