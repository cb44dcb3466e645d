package examController

// GradeFor exposes the grade bucketing for tests.
var GradeFor = gradeFor
