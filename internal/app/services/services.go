package services

// Services defined in this package:
// - CourseService: course record lifecycle (list, details, create, edit, delete,
//   bulk credit update) and the department lookup for course forms
