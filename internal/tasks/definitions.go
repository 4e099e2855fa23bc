package tasks

// DefineTasks registers all available tasks
func DefineTasks() {
	RegisterHandler(ReconcileStaleOrdersTask.TaskID(), ReconcileStaleOrdersTask.HandleExecution)
}
