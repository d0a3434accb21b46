package config

type QueueKeyStruct struct {
	NotifyFanoutQueue string
}

var QueueKey = &QueueKeyStruct{
	NotifyFanoutQueue: "notify_fanout_queue",
}
