package config

type WorkerKeyStruct struct {
	BackupSnapshotQueue string
}

var WorkerKey = &WorkerKeyStruct{
	BackupSnapshotQueue: "backup_snapshot_queue",
}
