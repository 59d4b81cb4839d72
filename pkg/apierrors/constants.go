package apierrors

const (
	MsgInvalidTaskID          = "invalidTaskID"
	MsgInvalidTaskListID      = "invalidTaskListID"
	MsgInvalidHouseID         = "invalidHouseID"
	MsgInvalidTaskPayload     = "invalidTaskPayload"
	MsgInvalidTaskListPayload = "invalidTaskListPayload"
	MsgInvalidToken           = "invalidToken"
	MsgInvalidTaskFilter      = "invalidTaskFilter"

	MsgTaskNotFound     = "taskNotFound"
	MsgTaskListNotFound = "taskListNotFound"
	MsgHouseNotFound    = "houseNotFound"

	MsgTaskAlreadyCompleted    = "taskAlreadyCompleted"
	MsgTaskAlreadyNotCompleted = "taskAlreadyNotCompleted"
	MsgUnrecognizedStatus      = "unrecognizedStatus"
	MsgInvalidTransition       = "invalidTransition"
	MsgActorRequired           = "actorRequired"

	MsgFailListTasks        = "failListTasks"
	MsgFailCreateTask       = "failCreateTask"
	MsgFailGetTask          = "failGetTask"
	MsgFailUpdateTask       = "failUpdateTask"
	MsgFailDeleteTask       = "failDeleteTask"
	MsgFailUpdateTaskStatus = "failUpdateTaskStatus"
	MsgFailCreateTaskList   = "failCreateTaskList"
	MsgFailGetTaskList      = "failGetTaskList"
	MsgFailUpdateTaskList   = "failUpdateTaskList"
	MsgFailDeleteTaskList   = "failDeleteTaskList"
	MsgFailGetHouse         = "failGetHouse"
)
