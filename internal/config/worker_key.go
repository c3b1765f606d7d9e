package config

type WorkerKeyStruct struct {
	PersistTotalsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistTotalsQueue: "persist_totals_queue",
}
